package models

import (
	"strings"

	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
)

// Department is a University of Adelaide school or faculty.
type Department string

const (
	DeptComputerScience Department = "ComputerScience"
	DeptEngineering     Department = "Engineering"
	DeptMathematics     Department = "Mathematics"
	DeptSciences        Department = "Sciences"
	DeptBusiness        Department = "Business"
	DeptEconomics       Department = "Economics"
	DeptLaw             Department = "Law"
	DeptMedicine        Department = "Medicine"
	DeptNursing         Department = "Nursing"
	DeptHealthSciences  Department = "HealthSciences"
	DeptArts            Department = "Arts"
	DeptArchitecture    Department = "Architecture"
	DeptEducation       Department = "Education"
	DeptMusic           Department = "Music"
	DeptAgriculture     Department = "Agriculture"
	DeptOther           Department = "Other"
)

// Departments lists every canonical department.
var Departments = []Department{
	DeptComputerScience, DeptEngineering, DeptMathematics, DeptSciences,
	DeptBusiness, DeptEconomics, DeptLaw, DeptMedicine, DeptNursing,
	DeptHealthSciences, DeptArts, DeptArchitecture, DeptEducation, DeptMusic,
	DeptAgriculture, DeptOther,
}

var departmentAliases = map[string]Department{
	"cs":                  DeptComputerScience,
	"compsci":             DeptComputerScience,
	"computing":           DeptComputerScience,
	"eng":                 DeptEngineering,
	"maths":               DeptMathematics,
	"math":                DeptMathematics,
	"science":             DeptSciences,
	"physicalsciences":    DeptSciences,
	"biologicalsciences":  DeptSciences,
	"abs":                 DeptBusiness,
	"commerce":            DeptBusiness,
	"econ":                DeptEconomics,
	"adelaidelawschool":   DeptLaw,
	"med":                 DeptMedicine,
	"medicalschool":       DeptMedicine,
	"nursingandmidwifery": DeptNursing,
	"health":              DeptHealthSciences,
	"humanities":          DeptArts,
	"artsandhumanities":   DeptArts,
	"socialsciences":      DeptArts,
	"elderconservatorium": DeptMusic,
	"conservatorium":      DeptMusic,
	"agri":                DeptAgriculture,
	"foodandwine":         DeptAgriculture,
}

// ParseDepartment maps a canonical name or a known alias to a Department.
func ParseDepartment(raw string) (Department, error) {
	return parseEnum(raw, Departments, departmentAliases, identitydomain.ErrInvalidDepartment)
}

func (d Department) String() string { return string(d) }

// Degree is the level of study.
type Degree string

const (
	DegreeFoundation Degree = "Foundation"
	DegreeDiploma    Degree = "Diploma"
	DegreeBachelor   Degree = "Bachelor"
	DegreeHonours    Degree = "Honours"
	DegreeMaster     Degree = "Master"
	DegreePhD        Degree = "PhD"
	DegreeExchange   Degree = "Exchange"
)

var Degrees = []Degree{
	DegreeFoundation, DegreeDiploma, DegreeBachelor, DegreeHonours,
	DegreeMaster, DegreePhD, DegreeExchange,
}

var degreeAliases = map[string]Degree{
	"pathway":       DegreeFoundation,
	"undergraduate": DegreeBachelor,
	"undergrad":     DegreeBachelor,
	"bachelors":     DegreeBachelor,
	"ba":            DegreeBachelor,
	"bsc":           DegreeBachelor,
	"hons":          DegreeHonours,
	"honors":        DegreeHonours,
	"masters":       DegreeMaster,
	"postgraduate":  DegreeMaster,
	"postgrad":      DegreeMaster,
	"msc":           DegreeMaster,
	"mba":           DegreeMaster,
	"doctorate":     DegreePhD,
	"doctoral":      DegreePhD,
	"studyabroad":   DegreeExchange,
	"nonaward":      DegreeExchange,
}

func ParseDegree(raw string) (Degree, error) {
	return parseEnum(raw, Degrees, degreeAliases, identitydomain.ErrInvalidDegree)
}

func (d Degree) String() string { return string(d) }

type Sex string

const (
	SexMale           Sex = "Male"
	SexFemale         Sex = "Female"
	SexNonBinary      Sex = "NonBinary"
	SexPreferNotToSay Sex = "PreferNotToSay"
)

var Sexes = []Sex{SexMale, SexFemale, SexNonBinary, SexPreferNotToSay}

var sexAliases = map[string]Sex{
	"m":           SexMale,
	"man":         SexMale,
	"f":           SexFemale,
	"woman":       SexFemale,
	"nb":          SexNonBinary,
	"enby":        SexNonBinary,
	"undisclosed": SexPreferNotToSay,
	"prefernot":   SexPreferNotToSay,
	"none":        SexPreferNotToSay,
}

func ParseSex(raw string) (Sex, error) {
	return parseEnum(raw, Sexes, sexAliases, identitydomain.ErrInvalidSex)
}

func (s Sex) String() string { return string(s) }

// Nationality is optional on a user; the empty string means unset.
type Nationality string

const (
	NatAustralia     Nationality = "Australia"
	NatChina         Nationality = "China"
	NatIndia         Nationality = "India"
	NatMalaysia      Nationality = "Malaysia"
	NatVietnam       Nationality = "Vietnam"
	NatIndonesia     Nationality = "Indonesia"
	NatSingapore     Nationality = "Singapore"
	NatHongKong      Nationality = "HongKong"
	NatJapan         Nationality = "Japan"
	NatSouthKorea    Nationality = "SouthKorea"
	NatNepal         Nationality = "Nepal"
	NatNewZealand    Nationality = "NewZealand"
	NatUnitedKingdom Nationality = "UnitedKingdom"
	NatUnitedStates  Nationality = "UnitedStates"
	NatOther         Nationality = "Other"
)

var Nationalities = []Nationality{
	NatAustralia, NatChina, NatIndia, NatMalaysia, NatVietnam, NatIndonesia,
	NatSingapore, NatHongKong, NatJapan, NatSouthKorea, NatNepal,
	NatNewZealand, NatUnitedKingdom, NatUnitedStates, NatOther,
}

var nationalityAliases = map[string]Nationality{
	"au":           NatAustralia,
	"aus":          NatAustralia,
	"australian":   NatAustralia,
	"cn":           NatChina,
	"prc":          NatChina,
	"chinese":      NatChina,
	"in":           NatIndia,
	"indian":       NatIndia,
	"my":           NatMalaysia,
	"malaysian":    NatMalaysia,
	"vn":           NatVietnam,
	"vietnamese":   NatVietnam,
	"id":           NatIndonesia,
	"indonesian":   NatIndonesia,
	"sg":           NatSingapore,
	"singaporean":  NatSingapore,
	"hk":           NatHongKong,
	"jp":           NatJapan,
	"japanese":     NatJapan,
	"kr":           NatSouthKorea,
	"korea":        NatSouthKorea,
	"korean":       NatSouthKorea,
	"np":           NatNepal,
	"nepali":       NatNepal,
	"nz":           NatNewZealand,
	"newzealander": NatNewZealand,
	"uk":           NatUnitedKingdom,
	"gb":           NatUnitedKingdom,
	"british":      NatUnitedKingdom,
	"greatbritain": NatUnitedKingdom,
	"us":           NatUnitedStates,
	"usa":          NatUnitedStates,
	"american":     NatUnitedStates,
}

// ParseNationality maps raw to a Nationality. Blank input yields "" and no error.
func ParseNationality(raw string) (Nationality, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseEnum(raw, Nationalities, nationalityAliases, identitydomain.ErrInvalidNationality)
}

func (n Nationality) String() string { return string(n) }

// parseEnum matches raw against canonical values and aliases after folding
// case and dropping spaces, hyphens, underscores, ampersands and dots.
func parseEnum[T ~string](raw string, canonical []T, aliases map[string]T, invalid error) (T, error) {
	key := normalizeEnumKey(raw)
	if key == "" {
		return "", invalid
	}
	for _, v := range canonical {
		if normalizeEnumKey(string(v)) == key {
			return v, nil
		}
	}
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	return "", invalid
}

var enumKeyReplacer = strings.NewReplacer(" ", "", "-", "", "_", "", "&", "and", ".", "", "'", "")

func normalizeEnumKey(raw string) string {
	return enumKeyReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}
