package gdl

// Node and graph shapes.
const (
	ShapeBox      = "box"
	ShapeRhomb    = "rhomb"
	ShapeEllipse  = "ellipse"
	ShapeTriangle = "triangle"
)

// Named colours understood by viewers without a colour table entry.
const (
	ColorBlack     = "black"
	ColorBlue      = "blue"
	ColorLightBlue = "lightblue"
	ColorRed       = "red"
	ColorGreen     = "green"
	ColorYellow    = "yellow"
	ColorWhite     = "white"
	ColorLightGrey = "lightgrey"
)

// Edge line styles.
const (
	LineContinuous = "continuous"
	LineDashed     = "dashed"
	LineDotted     = "dotted"
	LineInvisible  = "invisible"
)

// Layout algorithms.
const (
	LayoutMaxDepth = "max_depth"
	LayoutTree     = "tree"
)

// Graph orientations.
const (
	OrientationTopToBottom = "top_to_bottom"
	OrientationLeftToRight = "left_to_right"
	OrientationBottomToTop = "bottom_to_top"
	OrientationRightToLeft = "right_to_left"
)
