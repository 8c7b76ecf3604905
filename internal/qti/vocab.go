package qti

// Enumerated QTI vocabularies. Each enum carries an explicit token table so
// the wire format never depends on Go identifier names; the zero value of the
// optional enums means "unset" and is suppressed during emission.

// Cardinality says whether a variable is single valued or a container.
type Cardinality uint8

const (
	CardinalitySingle Cardinality = iota
	CardinalityMultiple
	CardinalityOrdered
	CardinalityRecord
)

var cardinalityTokens = [...]string{
	CardinalitySingle:   "single",
	CardinalityMultiple: "multiple",
	CardinalityOrdered:  "ordered",
	CardinalityRecord:   "record",
}

func (c Cardinality) String() string { return cardinalityTokens[c] }

// BaseType identifies the value space a declared variable draws from.
// BaseTypeUnset is used for record-cardinality variables, which have none.
type BaseType uint8

const (
	BaseTypeUnset BaseType = iota
	BaseTypeBoolean
	BaseTypeDirectedPair
	BaseTypeDuration
	BaseTypeFile
	BaseTypeFloat
	BaseTypeIdentifier
	BaseTypeInteger
	BaseTypePair
	BaseTypePoint
	BaseTypeString
	BaseTypeURI
)

var baseTypeTokens = [...]string{
	BaseTypeBoolean:      "boolean",
	BaseTypeDirectedPair: "directedPair",
	BaseTypeDuration:     "duration",
	BaseTypeFile:         "file",
	BaseTypeFloat:        "float",
	BaseTypeIdentifier:   "identifier",
	BaseTypeInteger:      "integer",
	BaseTypePair:         "pair",
	BaseTypePoint:        "point",
	BaseTypeString:       "string",
	BaseTypeURI:          "uri",
}

func (b BaseType) String() string { return baseTypeTokens[b] }

// Orientation hints to rendering systems that choices have an inherent
// vertical or horizontal layout.
type Orientation uint8

const (
	OrientationUnset Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

var orientationTokens = [...]string{
	OrientationHorizontal: "horizontal",
	OrientationVertical:   "vertical",
}

func (o Orientation) String() string { return orientationTokens[o] }

// Dir is the HTML bidirectional text-direction hint.
type Dir uint8

const (
	DirUnset Dir = iota
	DirAuto
	DirLeftToRight
	DirRightToLeft
)

var dirTokens = [...]string{
	DirAuto:        "auto",
	DirLeftToRight: "ltr",
	DirRightToLeft: "rtl",
}

func (d Dir) String() string { return dirTokens[d] }

// ShowHide controls whether template-bound content starts visible or hidden.
type ShowHide uint8

const (
	ShowHideUnset ShowHide = iota
	Show
	Hide
)

var showHideTokens = [...]string{
	Show: "show",
	Hide: "hide",
}

func (s ShowHide) String() string { return showHideTokens[s] }

// NavigationMode determines the paths a candidate may take through a test
// part.
type NavigationMode uint8

const (
	NavigationLinear NavigationMode = iota
	NavigationNonlinear
)

var navigationTokens = [...]string{
	NavigationLinear:    "linear",
	NavigationNonlinear: "nonlinear",
}

func (n NavigationMode) String() string { return navigationTokens[n] }

// SubmissionMode determines when responses are submitted for processing.
type SubmissionMode uint8

const (
	SubmissionIndividual SubmissionMode = iota
	SubmissionSimultaneous
)

var submissionTokens = [...]string{
	SubmissionIndividual:   "individual",
	SubmissionSimultaneous: "simultaneous",
}

func (s SubmissionMode) String() string { return submissionTokens[s] }

// View restricts an outcome to an audience.
type View uint8

const (
	ViewUnset View = iota
	ViewAuthor
	ViewCandidate
	ViewProctor
	ViewScorer
	ViewTestConstructor
	ViewTutor
)

var viewTokens = [...]string{
	ViewAuthor:          "author",
	ViewCandidate:       "candidate",
	ViewProctor:         "proctor",
	ViewScorer:          "scorer",
	ViewTestConstructor: "testConstructor",
	ViewTutor:           "tutor",
}

func (v View) String() string { return viewTokens[v] }
