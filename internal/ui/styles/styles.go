// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#52606D", Dark: "#BBBBBB"} // Labels, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Option descriptions
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"} // Focused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}

	// Step indicator colors
	StepActiveColor   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	StepDoneColor     = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	StepPendingColor  = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"}
	HeaderBannerColor = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#1E40AF"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#111111", Dark: "#FFFFFF"}

	// Button colors
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonSuccessBgColor        = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#1E8449"}
	ButtonDisabledBgColor       = lipgloss.AdaptiveColor{Light: "#BDC3C7", Dark: "#2D2D2D"}

	// Selection indicator style (used for ">" prefix in option lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	SuccessButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSuccessBgColor)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(TextMutedColor).
				Background(ButtonDisabledBgColor)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ButtonTextColor).
			Background(HeaderBannerColor).
			Padding(0, 2)

	SubtitleStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	StepTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor).MarginBottom(1)

	// Form
	FieldLabelStyle        = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	FieldLabelFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderHighlightFocusColor)
	FieldErrorStyle        = lipgloss.NewStyle().Foreground(StatusErrorColor)
	OptionDescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor).PaddingLeft(4)
	HintStyle              = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	// Submission banners
	SuccessBannerStyle = lipgloss.NewStyle().
				Foreground(StatusSuccessColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(StatusSuccessColor).
				Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(StatusErrorColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(StatusErrorColor).
				Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}
)
