package ui

// listView tracks the scroll position of the match list
type listView struct {
	topLine int // Index of the record at the top of the list area
	width   int // Terminal width
	height  int // Rows available to the list
}

func (v *listView) navigateUp() {
	if v.topLine > 0 {
		v.topLine--
	}
}

func (v *listView) navigateDown(count int) {
	maxTop := count - 1
	if maxTop < 0 {
		maxTop = 0
	}
	if v.topLine < maxTop {
		v.topLine++
	}
}

func (v *listView) pageDown(count int) {
	v.topLine += v.height
	// Allow scrolling until last line is at top
	maxTop := count - 1
	if maxTop < 0 {
		maxTop = 0
	}
	if v.topLine > maxTop {
		v.topLine = maxTop
	}
}

func (v *listView) pageUp() {
	v.topLine -= v.height
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// clamp keeps topLine inside a list that may have shrunk since the last draw
func (v *listView) clamp(count int) {
	if v.topLine >= count {
		v.topLine = count - 1
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// resize reserves the header rows and the status bar
func (v *listView) resize(width, height int) {
	v.width = width
	v.height = height - headerRows - 1
	if v.height < 0 {
		v.height = 0
	}
}
