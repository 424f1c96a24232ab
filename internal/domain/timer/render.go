package timer

import "fmt"

// MaxReportBytes is the default size limit of a rendered status block.
const MaxReportBytes = 254

const reportFormat = "State:\t\t%s\nCounter in s:\t\t%d\nPaused in s:\t\t%d\nTotal in s:\t\t%d\n"

// Render formats the report into the four-line status block, limited to MaxReportBytes.
func Render(r Report) (string, error) {
	return RenderLimit(r, MaxReportBytes)
}

// RenderLimit formats the report and fails with ErrReportTooLarge if the
// result is longer than limit bytes. The output is never truncated.
func RenderLimit(r Report, limit int) (string, error) {
	text := fmt.Sprintf(reportFormat, r.State, r.ElapsedSeconds, r.PausedSeconds, r.TotalSeconds)
	if len(text) > limit {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrReportTooLarge, len(text), limit)
	}

	return text, nil
}
