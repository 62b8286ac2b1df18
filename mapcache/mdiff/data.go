// Package mdiff maps the compact difficulty rank and characteristic codes of
// the song details cache.
package mdiff

type (
	Label          string
	Characteristic string
	Code           int32
)

const (
	Easy       = Label("Easy")
	Normal     = Label("Normal")
	Hard       = Label("Hard")
	Expert     = Label("Expert")
	ExpertPlus = Label("ExpertPlus")
)

const (
	Standard         = Characteristic("Standard")
	OneSaber         = Characteristic("OneSaber")
	NoArrows         = Characteristic("NoArrows")
	Lawless          = Characteristic("Lawless")
	Lightshow        = Characteristic("Lightshow")
	Legacy           = Characteristic("Legacy")
	NinetyDegree     = Characteristic("90Degree")
	ThreeSixtyDegree = Characteristic("360Degree")
)

const (
	// FallbackLabel is returned for unknown rank codes. The hardest tier is
	// used because an unranked difficulty is assumed to be a custom expert map.
	FallbackLabel = ExpertPlus
	// FallbackCharacteristic is returned for unknown characteristic codes, as
	// every map without an explicit characteristic is played in Standard.
	FallbackCharacteristic = Standard
)

var labelByCode = map[Code]Label{
	1: Easy,
	2: Normal,
	3: Hard,
	4: Expert,
	5: ExpertPlus,
}

var characteristicByCode = map[Code]Characteristic{
	1: Standard,
	2: OneSaber,
	3: NoArrows,
	4: Lawless,
	5: Lightshow,
	6: Legacy,
	7: NinetyDegree,
	8: ThreeSixtyDegree,
}
