package display

import "fyne.io/fyne/v2"

const (
	defaultWindowWidth  = float32(1024)
	defaultWindowHeight = float32(600)
)

// centeredLinesLayout stacks text lines as one block centered in the window.
// Empty lines keep their height so the blank separator stays visible.
type centeredLinesLayout struct {
	lineHeight float32
}

func (layout *centeredLinesLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	blockHeight := layout.blockHeight(objects)
	y := (size.Height - blockHeight) / 2
	if y < 0 {
		y = 0
	}
	for _, object := range objects {
		height := layout.rowHeight(object)
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
		y += height
	}
}

func (layout *centeredLinesLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width float32
	for _, object := range objects {
		if objectWidth := object.MinSize().Width; objectWidth > width {
			width = objectWidth
		}
	}
	return fyne.NewSize(width, layout.blockHeight(objects))
}

func (layout *centeredLinesLayout) blockHeight(objects []fyne.CanvasObject) float32 {
	var height float32
	for _, object := range objects {
		height += layout.rowHeight(object)
	}
	return height
}

func (layout *centeredLinesLayout) rowHeight(object fyne.CanvasObject) float32 {
	height := object.MinSize().Height
	if height < layout.lineHeight {
		height = layout.lineHeight
	}
	return height
}
