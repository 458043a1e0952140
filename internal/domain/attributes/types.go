// Package attributes implements the pure, total structured-fact
// extractors the matcher runs over raw (not normalized) product and
// query strings (spec §4.2). Regular expressions are compiled once at
// package init and reused across calls, since these functions sit in
// the hot path for every candidate evaluated by the Hybrid strategy.
package attributes

// ThreadDirection is a closed enum.
type ThreadDirection string

const (
	ThreadInner ThreadDirection = "inner"
	ThreadOuter ThreadDirection = "outer"
	ThreadNone  ThreadDirection = "none"
)

// Category is a closed enum.
type Category string

const (
	CategoryPert     Category = "pert"
	CategoryPND      Category = "pnd"
	CategoryPrestige Category = "prestige"
	CategoryOutdoor  Category = "outdoor"
	CategoryPPR      Category = "ppr"
	CategorySewer    Category = "sewer"
	CategoryNone     Category = "none"
)

// Color is a closed enum.
type Color string

const (
	ColorWhite Color = "white"
	ColorGray  Color = "gray"
	ColorRed   Color = "red"
	ColorNone  Color = "none"
)

// ProductType is an open-ish string enum; see ExtractProductType's
// ordered marker table for the full closed set of values it returns.
type ProductType string

const (
	TypeNone         ProductType = ""
	TypeCross        ProductType = "крестовина"
	TypeTee          ProductType = "тройник"
	TypeAdapter      ProductType = "переходник"
	TypeCoupling     ProductType = "муфта"
	TypeElbow        ProductType = "отвод"
	TypePlug         ProductType = "заглушка"
	TypeInspection   ProductType = "ревизия"
	TypeStub         ProductType = "патрубок"
	TypeSupport      ProductType = "клипса"
	TypePipe         ProductType = "труба"
	TypeClamp        ProductType = "хомут"
	TypeValve        ProductType = "кран"
	TypeFilter       ProductType = "фильтр"
	TypeCheckValve   ProductType = "клапан"
	TypeTrap         ProductType = "сифон"
)

// PipeSize is a straight-pipe diameter x length pair.
type PipeSize struct {
	D int
	L int
}

// ThreadSize pairs the metric equivalent with the catalog's inch
// literal (e.g. {MM: 32, Inch: `1`}).
type ThreadSize struct {
	MM   int
	Inch string
}

// Set bundles every attribute extractable from a single string; zero
// values mean "attribute absent" throughout (spec: "missing attribute
// ⇒ none/null").
type Set struct {
	PipeSize      *PipeSize
	FittingSize   []int
	ThreadSize    *ThreadSize
	ThreadDir     ThreadDirection
	ProductType   ProductType
	Angle         *int
	Category      Category
	Color         Color
	ClampDiameter *int
	Eco           bool
	Detachable    bool
	Reducer       bool
}

// Extract computes every attribute from a single raw (not normalized)
// string in one pass.
func Extract(raw string) Set {
	return Set{
		PipeSize:      ExtractPipeSize(raw),
		FittingSize:   ExtractFittingSize(raw),
		ThreadSize:    ExtractThreadSize(raw),
		ThreadDir:     ExtractThreadDirection(raw),
		ProductType:   ExtractProductType(raw),
		Angle:         ExtractAngle(raw),
		Category:      DetectCategory(raw),
		Color:         ExtractColor(raw),
		ClampDiameter: ExtractClampMM(raw),
		Eco:           IsEco(raw),
		Detachable:    IsDetachable(raw),
		Reducer:       IsReducer(raw),
	}
}
