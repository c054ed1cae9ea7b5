package commands

// Verb is a decoded command token. Raw verb strings are decoded exactly once;
// anything unrecognized becomes VerbUnknown rather than falling through a
// string comparison chain.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbHelp
	VerbEmote
	VerbSay
	VerbShout
	VerbWhisper
	VerbLook
	VerbGo
)

// ParseVerb decodes a raw verb token. Matching is case-sensitive, as is every
// name comparison in the game; only exit arguments are folded.
func ParseVerb(token string) Verb {
	switch token {
	case "help":
		return VerbHelp
	case "emote", "e":
		return VerbEmote
	case "say", "s":
		return VerbSay
	case "shout", "sh":
		return VerbShout
	case "whisper", "w":
		return VerbWhisper
	case "look", "l":
		return VerbLook
	case "go", "g":
		return VerbGo
	default:
		return VerbUnknown
	}
}

func (v Verb) String() string {
	switch v {
	case VerbHelp:
		return "help"
	case VerbEmote:
		return "emote"
	case VerbSay:
		return "say"
	case VerbShout:
		return "shout"
	case VerbWhisper:
		return "whisper"
	case VerbLook:
		return "look"
	case VerbGo:
		return "go"
	default:
		return "unknown"
	}
}
