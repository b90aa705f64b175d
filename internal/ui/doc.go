// Package ui contains the Fyne desktop window for the task list.
// The window is both the list view and the form input of a tasklist.Client;
// every user interaction becomes an event dispatched through the client.
package ui
