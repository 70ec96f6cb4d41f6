// Package registration provides the pure domain layer for solution registrations.
//
// It defines the draft collected by the wizard, the enumerations a draft is built
// from, the declarative constraint table shared by the wizard and the persistence
// service, and the repository interface the store implements.
//
// The package has no infrastructure dependencies.
package registration

// UserCategory describes who is registering.
type UserCategory string

const (
	UserCategoryProfessor     UserCategory = "professor"
	UserCategoryIndustrialist UserCategory = "industrialist"
	UserCategoryEnthusiast    UserCategory = "enthusiast"
	UserCategoryOther         UserCategory = "other"
)

// UserCategoryOption is a selectable user category with its display label.
type UserCategoryOption struct {
	Value UserCategory
	Label string
}

// UserCategories lists the user categories in display order.
func UserCategories() []UserCategoryOption {
	return []UserCategoryOption{
		{Value: UserCategoryProfessor, Label: "Professor"},
		{Value: UserCategoryIndustrialist, Label: "Industrialist"},
		{Value: UserCategoryEnthusiast, Label: "Tech Enthusiast"},
		{Value: UserCategoryOther, Label: "Other"},
	}
}

// IsValid returns true if c is a recognized user category.
func (c UserCategory) IsValid() bool {
	switch c {
	case UserCategoryProfessor, UserCategoryIndustrialist, UserCategoryEnthusiast, UserCategoryOther:
		return true
	default:
		return false
	}
}

// Label returns the display label, or the raw value when unknown.
func (c UserCategory) Label() string {
	for _, opt := range UserCategories() {
		if opt.Value == c {
			return opt.Label
		}
	}
	return string(c)
}

// SolutionCategory selects what gets delivered: OS image, hardware, both, or a
// custom build.
type SolutionCategory string

const (
	// SolutionWithOsWithoutHardware is an SD card with a pre-installed OS and code.
	SolutionWithOsWithoutHardware SolutionCategory = "withOsWithoutHardware"

	// SolutionWithoutHardwareWithOs is the OS only, with instructions on which
	// hardware to buy and how to set it up.
	SolutionWithoutHardwareWithOs SolutionCategory = "withoutHardwareWithOs"

	// SolutionWithBothOsAndHardware is the complete system-in-package.
	SolutionWithBothOsAndHardware SolutionCategory = "withBothOsAndHardware"

	// SolutionCustomizable is a custom requirement discussed directly with the team.
	SolutionCustomizable SolutionCategory = "customizable"
)

// SolutionCategoryOption describes one solution category.
//
// DeliversOS is the single source of truth for whether an OS delivery
// preference applies to the category.
type SolutionCategoryOption struct {
	Value       SolutionCategory
	Label       string
	Description string
	DeliversOS  bool
}

var solutionCategories = []SolutionCategoryOption{
	{
		Value: SolutionWithOsWithoutHardware,
		Label: "With OS, Without Hardware",
		Description: "We will provide an SD card that has a pre-installed OS and code (algorithm, " +
			"image/voice processing algorithm). Just put the SD card in an embedded system and power it on. " +
			"It will detect a specific condition (like face, wound) and one of the GPIOs will be turned on HIGH. " +
			"This pin can be further connected with a buzzer, LED, motor, etc.",
		DeliversOS: true,
	},
	{
		Value: SolutionWithoutHardwareWithOs,
		Label: "Without Hardware, With OS",
		Description: "This is just the OS, and we will also share specific instructions on what hardware " +
			"to buy and how to set it up. After setting it up, it will have a touchscreen, camera, and " +
			"microphone integrated into it.",
		DeliversOS: true,
	},
	{
		Value: SolutionWithBothOsAndHardware,
		Label: "With Both OS and Hardware",
		Description: "We will deliver a complete package with both hardware and software: a complete " +
			"\"system in package\" with a touchscreen, sound, camera, and integrated processor.",
		DeliversOS: true,
	},
	{
		Value: SolutionCustomizable,
		Label: "Customizable Solution",
		Description: "You have a custom requirement and need some special features. Contact us on " +
			"WhatsApp and explain your requirements so we can give you a customized solution.",
		DeliversOS: false,
	},
}

// SolutionCategories lists the solution categories in display order.
func SolutionCategories() []SolutionCategoryOption {
	out := make([]SolutionCategoryOption, len(solutionCategories))
	copy(out, solutionCategories)
	return out
}

func (c SolutionCategory) option() (SolutionCategoryOption, bool) {
	for _, opt := range solutionCategories {
		if opt.Value == c {
			return opt, true
		}
	}
	return SolutionCategoryOption{}, false
}

// IsValid returns true if c is a recognized solution category.
func (c SolutionCategory) IsValid() bool {
	_, ok := c.option()
	return ok
}

// DeliversOS reports whether an OS delivery preference is meaningful for c.
// Unknown categories never deliver an OS.
func (c SolutionCategory) DeliversOS() bool {
	opt, ok := c.option()
	return ok && opt.DeliversOS
}

// Label returns the display label, or the raw value when unknown.
func (c SolutionCategory) Label() string {
	if opt, ok := c.option(); ok {
		return opt.Label
	}
	return string(c)
}

// OSPreference selects how the OS is delivered and started.
type OSPreference string

const (
	// OSPreferenceNone means no preference has been recorded.
	OSPreferenceNone OSPreference = ""

	// OSPreferenceExecutable puts a launcher file on the desktop.
	OSPreferenceExecutable OSPreference = "executable"

	// OSPreferenceAutoBooted starts the code automatically on power up.
	OSPreferenceAutoBooted OSPreference = "autoBooted"
)

// OSPreferenceOption describes one OS delivery method.
type OSPreferenceOption struct {
	Value       OSPreference
	Label       string
	Description string
}

// OSPreferences lists the OS delivery methods in display order.
func OSPreferences() []OSPreferenceOption {
	return []OSPreferenceOption{
		{
			Value: OSPreferenceExecutable,
			Label: "Executable File (CEXR file on Desktop)",
			Description: "The OS has a special file on the desktop; on clicking, pre-written code starts running. " +
				"You can still browse files and use other applications, and you control when to start the code.",
		},
		{
			Value: OSPreferenceAutoBooted,
			Label: "Auto Booted (Plug and Play)",
			Description: "The OS is prepared so that on powering the device a specific code starts running " +
				"automatically. The device will automatically do its job.",
		},
	}
}

// IsValid returns true if p is a recognized, non-empty OS preference.
func (p OSPreference) IsValid() bool {
	return p == OSPreferenceExecutable || p == OSPreferenceAutoBooted
}

// Label returns the display label, "Not specified" when empty, or the raw value
// when unknown.
func (p OSPreference) Label() string {
	if p == OSPreferenceNone {
		return "Not specified"
	}
	for _, opt := range OSPreferences() {
		if opt.Value == p {
			return opt.Label
		}
	}
	return string(p)
}
