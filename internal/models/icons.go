package models

// Icon names a glyph shown next to a landing page feature.
type Icon string

// Supported icons. Anything else renders as IconHelpCircle.
const (
	IconBookOpen      Icon = "BookOpen"
	IconShieldCheck   Icon = "ShieldCheck"
	IconHeart         Icon = "Heart"
	IconBrainCircuit  Icon = "BrainCircuit"
	IconUsers         Icon = "Users"
	IconThumbsUp      Icon = "ThumbsUp"
	IconSmile         Icon = "Smile"
	IconSettings      Icon = "Settings"
	IconMessageCircle Icon = "MessageCircle"

	IconHelpCircle Icon = "HelpCircle"
)

// DefaultFeatureIcon is assigned to newly added features.
const DefaultFeatureIcon = IconThumbsUp

// SupportedIcons is the ordered list offered by the icon picker.
var SupportedIcons = []Icon{
	IconBookOpen,
	IconShieldCheck,
	IconHeart,
	IconBrainCircuit,
	IconUsers,
	IconThumbsUp,
	IconSmile,
	IconSettings,
	IconMessageCircle,
}

// iconTable is the fixed dispatch table from stored name to renderable icon.
var iconTable = map[Icon]Icon{
	IconBookOpen:      IconBookOpen,
	IconShieldCheck:   IconShieldCheck,
	IconHeart:         IconHeart,
	IconBrainCircuit:  IconBrainCircuit,
	IconUsers:         IconUsers,
	IconThumbsUp:      IconThumbsUp,
	IconSmile:         IconSmile,
	IconSettings:      IconSettings,
	IconMessageCircle: IconMessageCircle,
}

// ResolveIcon maps a stored icon name to a supported icon, falling back to
// IconHelpCircle for unknown names.
func ResolveIcon(name string) Icon {
	if icon, ok := iconTable[Icon(name)]; ok {
		return icon
	}
	return IconHelpCircle
}

// IsSupported reports whether the icon is in the dispatch table.
func (i Icon) IsSupported() bool {
	_, ok := iconTable[i]
	return ok
}
