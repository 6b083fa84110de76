package progress

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// counterLine matches lines such as "Receiving objects:  45% (9/20)".
var counterLine = regexp.MustCompile(`^([A-Za-z ]+):\s+\d+% \((\d+)/(\d+)\)`)

// phaseForLabel maps the label of a remote progress line to a phase name.
var phaseForLabel = map[string]string{
	"counting objects":    PhaseObjects,
	"compressing objects": PhaseObjects,
	"receiving objects":   PhaseObjects,
	"resolving deltas":    PhaseDeltas,
}

type sidebandWriter struct {
	rep   Reporter
	buf   []byte
	phase string
	total int64
}

// NewSidebandWriter returns a writer that parses git progress output, as
// sent on the sideband channel during a fetch, and forwards it to rep.
// Lines are separated by '\r' or '\n'; unrecognised lines are ignored.
func NewSidebandWriter(rep Reporter) io.Writer {
	if rep == nil {
		rep = Nop()
	}
	return &sidebandWriter{rep: rep}
}

func (w *sidebandWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		w.line(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *sidebandWriter) line(s string) {
	m := counterLine.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return
	}

	phase, ok := phaseForLabel[strings.ToLower(strings.TrimSpace(m[1]))]
	if !ok {
		return
	}

	current, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return
	}
	total, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return
	}

	if phase != w.phase || total != w.total {
		w.phase, w.total = phase, total
		w.rep.Phase(phase, total)
	}
	w.rep.Update(current)
}
