// Package varna classifies runtime values into coarse type categories and
// judges operator compatibility between them. It only advises: nothing here
// stops a program from running.
package varna

type Varna int

const (
	Shunya      Varna = iota // null
	Sankhya                  // numbers
	Shabda                   // strings
	SatyaAsatya              // booleans
	Samuha                   // collections
	Kaarya                   // functions
	Varga                    // classes and their instances
)

var names = [...]string{
	Shunya:      "शून्य",
	Sankhya:     "संख्या",
	Shabda:      "शब्द",
	SatyaAsatya: "सत्य_असत्य",
	Samuha:      "समूह",
	Kaarya:      "कार्य",
	Varga:       "वर्ग",
}

func (v Varna) String() string {
	if int(v) < 0 || int(v) >= len(names) {
		return "अज्ञात"
	}
	return names[v]
}

// Compatible reports whether values of a and b may stand in for each other.
// Null is compatible with everything; otherwise categories must match.
func Compatible(a, b Varna) bool {
	if a == Shunya {
		return true
	}
	return a == b
}

var casts = map[Varna][]Varna{
	Sankhya:     {Sankhya, Shabda, SatyaAsatya},
	Shabda:      {Shabda, Sankhya, SatyaAsatya},
	SatyaAsatya: {SatyaAsatya, Sankhya, Shabda},
	Shunya:      {SatyaAsatya, Shabda},
	Samuha:      {Shabda, SatyaAsatya},
	Kaarya:      {Shabda, SatyaAsatya},
	Varga:       {Shabda, SatyaAsatya},
}

// CanCast reports whether a value of category from converts to category to.
func CanCast(from, to Varna) bool {
	for _, v := range casts[from] {
		if v == to {
			return true
		}
	}
	return false
}

// CheckOperation reports whether op is meaningful for operands of categories l and r.
func CheckOperation(op string, l, r Varna) bool {
	switch op {
	case "+":
		return (l == Sankhya && r == Sankhya) || l == Shabda || r == Shabda
	case "-", "*", "/", "%":
		return l == Sankhya && r == Sankhya
	case "==", "!=":
		return true
	case "<", ">", "<=", ">=":
		return Compatible(l, r)
	case "च", "वा":
		return true
	}
	return false
}
