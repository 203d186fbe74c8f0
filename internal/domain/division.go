package domain

// Division is a FightMatrix weight-class code.
type Division int

// Division codes as used in the site's Division query parameter.
const (
	Heavyweight         Division = 1
	LightHeavyweight    Division = 2
	Middleweight        Division = 3
	Welterweight        Division = 4
	Lightweight         Division = 5
	Featherweight       Division = 6
	Bantamweight        Division = 7
	Flyweight           Division = 8
	WomensStrawweight   Division = 13
	WomensFlyweight     Division = 14
	WomensBantamweight  Division = 15
	WomensFeatherweight Division = 16
)

// divisionNames is ordered; the crawl walks divisions in this order.
var divisionNames = []struct {
	code Division
	name string
}{
	{Heavyweight, "Heavyweight"},
	{LightHeavyweight, "Light Heavyweight"},
	{Middleweight, "Middleweight"},
	{Welterweight, "Welterweight"},
	{Lightweight, "Lightweight"},
	{Featherweight, "Featherweight"},
	{Bantamweight, "Bantamweight"},
	{Flyweight, "Flyweight"},
	{WomensFeatherweight, "Women's Featherweight"},
	{WomensBantamweight, "Women's Bantamweight"},
	{WomensFlyweight, "Women's Flyweight"},
	{WomensStrawweight, "Women's Strawweight"},
}

// Divisions returns every known division in crawl order.
func Divisions() []Division {
	out := make([]Division, len(divisionNames))
	for i, d := range divisionNames {
		out[i] = d.code
	}
	return out
}

// Name returns the weight-class name, or "" for an unknown code.
func (d Division) Name() string {
	for _, entry := range divisionNames {
		if entry.code == d {
			return entry.name
		}
	}
	return ""
}

// Valid reports whether d is one of the known divisions.
func (d Division) Valid() bool {
	return d.Name() != ""
}

// IsWomens reports whether d is a women's division.
func (d Division) IsWomens() bool {
	switch d {
	case WomensStrawweight, WomensFlyweight, WomensBantamweight, WomensFeatherweight:
		return true
	default:
		return false
	}
}

func (d Division) String() string {
	return d.Name()
}
