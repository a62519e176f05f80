package form

// FormMsg marks the panel's own messages.
type FormMsg interface {
	isFormMsg()
}

func (SizeMsg) isFormMsg()       {}
func (SubmitMsg) isFormMsg()     {}
func (SubmittedMsg) isFormMsg()  {}
func (CancelMsg) isFormMsg()     {}
func (CheckCodeMsg) isFormMsg()  {}
func (CheckedMsg) isFormMsg()    {}
func (checkTickMsg) isFormMsg()  {}
func (closeDelayMsg) isFormMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// SubmitMsg asks the owning screen to run the mutation.
type SubmitMsg struct {
	Mode    Mode
	ID      string
	Payload map[string]any
}

// SubmittedMsg reports the mutation outcome back to the panel.
type SubmittedMsg struct {
	Err error
}

// CancelMsg closes the modal without submitting.
type CancelMsg struct{}

// CheckCodeMsg asks the owning screen to run the uniqueness check.
type CheckCodeMsg struct {
	Code      string
	ExcludeID string
}

// CheckedMsg reports the uniqueness outcome. Code identifies the checked
// value so a superseded response can be ignored.
type CheckedMsg struct {
	Code   string
	Exists bool
}

// checkTickMsg fires the debounced uniqueness check.
type checkTickMsg struct {
	seq int
}

// closeDelayMsg closes the modal after a warning has been shown.
type closeDelayMsg struct{}
