package manage

// DetailField is one label/value row of a read-only detail summary.
type DetailField struct {
	Label string
	Value string
}

// Reporter is the single channel a controller surfaces messages through.
type Reporter interface {
	// Error reports a failed command. cause may be nil.
	Error(message string, cause error)
	// Info reports a non-error notice, such as a command used with no selection.
	Info(message string)
	// Details presents a read-only summary of one entity.
	Details(title string, fields []DetailField)
}

type discardReporter struct{}

func (discardReporter) Error(string, error)           {}
func (discardReporter) Info(string)                   {}
func (discardReporter) Details(string, []DetailField) {}
