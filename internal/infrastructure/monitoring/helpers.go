package monitoring

// Evaluation status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Status maps an error to a status label.
func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
