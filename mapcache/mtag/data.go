// Package mtag maps the compact tag codes of the song details cache to the
// tag slugs used by the map catalog.
package mtag

type (
	Tag    string
	Family string
	Code   int32
)

const (
	FamilyUnknown = Family("unknown")
	// FamilyStyle holds the music genre tags.
	FamilyStyle = Family("style")
	// FamilyType holds the gameplay tags.
	FamilyType = Family("type")
)

// Style tags.
const (
	Dance               = Tag("dance")
	Swing               = Tag("swing")
	Nightcore           = Tag("nightcore")
	Folk                = Tag("folk-acoustic")
	KidsFamily          = Tag("kids-family")
	Ambient             = Tag("ambient")
	Funk                = Tag("funk-disco")
	Jazz                = Tag("jazz")
	Soul                = Tag("soul")
	Speedcore           = Tag("speedcore")
	Punk                = Tag("punk")
	Rb                  = Tag("rb")
	Holiday             = Tag("holiday")
	Vocaloid            = Tag("vocaloid")
	JRock               = Tag("j-rock")
	Trance              = Tag("trance")
	DrumBass            = Tag("drum-and-bass")
	Comedy              = Tag("comedy")
	Instrumental        = Tag("instrumental")
	Hardcore            = Tag("hardcore")
	KPop                = Tag("k-pop")
	Indie               = Tag("indie")
	Techno              = Tag("techno")
	House               = Tag("house")
	Game                = Tag("video-game-soundtrack")
	Film                = Tag("tv-movie-soundtrack")
	Alt                 = Tag("alternative")
	Dubstep             = Tag("dubstep")
	Metal               = Tag("metal")
	Anime               = Tag("anime")
	Hiphop              = Tag("hip-hop-rap")
	JPop                = Tag("j-pop")
	Rock                = Tag("rock")
	Pop                 = Tag("pop")
	Electronic          = Tag("electronic")
	ClassicalOrchestral = Tag("classical-orchestral")
)

// Type tags.
const (
	Accuracy   = Tag("accuracy")
	Balanced   = Tag("balanced")
	Challenge  = Tag("challenge")
	Dancestyle = Tag("dance-style")
	Fitness    = Tag("fitness")
	Speed      = Tag("speed")
	Tech       = Tag("tech")
)

// CodeUnknown is the zero value of the wire enum and never maps to a tag.
const CodeUnknown = Code(0)

// tagByCode follows the order of the MapTag enum of the cache schema.
var tagByCode = map[Code]Tag{
	1:  Dance,
	2:  Swing,
	3:  Nightcore,
	4:  Folk,
	5:  KidsFamily,
	6:  Ambient,
	7:  Funk,
	8:  Jazz,
	9:  Soul,
	10: Speedcore,
	11: Punk,
	12: Rb,
	13: Holiday,
	14: Vocaloid,
	15: JRock,
	16: Trance,
	17: DrumBass,
	18: Comedy,
	19: Instrumental,
	20: Hardcore,
	21: KPop,
	22: Indie,
	23: Techno,
	24: House,
	25: Game,
	26: Film,
	27: Alt,
	28: Dubstep,
	29: Metal,
	30: Anime,
	31: Hiphop,
	32: JPop,
	33: Rock,
	34: Pop,
	35: Electronic,
	36: ClassicalOrchestral,
	37: Accuracy,
	38: Balanced,
	39: Challenge,
	40: Dancestyle,
	41: Fitness,
	42: Speed,
	43: Tech,
}

// firstTypeCode splits the enum: codes below it are styles, the rest are types.
const firstTypeCode = Code(37)

var (
	codeByTag   = invert(tagByCode)
	familyByTag = families(tagByCode)
)

func invert(m map[Code]Tag) map[Tag]Code {
	result := make(map[Tag]Code, len(m))
	for code, tag := range m {
		result[tag] = code
	}
	return result
}

func families(m map[Code]Tag) map[Tag]Family {
	result := make(map[Tag]Family, len(m))
	for code, tag := range m {
		if code < firstTypeCode {
			result[tag] = FamilyStyle
		} else {
			result[tag] = FamilyType
		}
	}
	return result
}
