package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FileListItem is one row of the batch queue shown in the sidebar.
type FileListItem struct {
	ID     string
	Name   string
	Width  int
	Height int
	Size   int64
}

type FileListPanel struct {
	list      *widget.List
	items     []FileListItem
	selected  int
	container *fyne.Container
	callbacks Callbacks
}

func NewFileListPanel(callbacks Callbacks) *FileListPanel {
	panel := &FileListPanel{
		selected:  -1,
		callbacks: callbacks,
	}

	panel.list = widget.NewList(
		func() int {
			return len(panel.items)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item := panel.items[id]
			label := obj.(*widget.Label)
			label.SetText(fmt.Sprintf("%s (%dx%d, %s)",
				item.Name, item.Width, item.Height, formatBytes(item.Size)))
		},
	)
	panel.list.OnSelected = func(id widget.ListItemID) {
		panel.selected = id
	}
	panel.list.OnUnselected = func(id widget.ListItemID) {
		if panel.selected == id {
			panel.selected = -1
		}
	}

	addButton := widget.NewButton("Add Images...", func() {
		if panel.callbacks.OnImageAdd != nil {
			panel.callbacks.OnImageAdd()
		}
	})
	removeButton := widget.NewButton("Remove", func() {
		panel.removeSelected()
	})
	clearButton := widget.NewButton("Clear", func() {
		if panel.callbacks.OnClearImages != nil {
			panel.callbacks.OnClearImages()
		}
	})

	buttons := container.NewGridWithColumns(3, addButton, removeButton, clearButton)

	panel.container = container.NewBorder(
		widget.NewLabel("Batch Queue"),
		buttons,
		nil, nil,
		panel.list,
	)

	return panel
}

func (panel *FileListPanel) GetContainer() *fyne.Container {
	return panel.container
}

func (panel *FileListPanel) SetItems(items []FileListItem) {
	panel.items = items
	panel.selected = -1
	panel.list.UnselectAll()
	panel.list.Refresh()
}

func (panel *FileListPanel) removeSelected() {
	if panel.selected < 0 || panel.selected >= len(panel.items) {
		return
	}
	if panel.callbacks.OnRemoveImage != nil {
		panel.callbacks.OnRemoveImage(panel.items[panel.selected].ID)
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
