package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"statements/internal/core"
	"statements/internal/statement"
)

// formDateLayout is the value format of HTML date inputs.
const formDateLayout = "2006-01-02"

// parsePeriod reads the optional from/to query parameters. Either bound
// may be missing; a bound that does not parse is an invalid period
// rather than a silently unbounded one.
func parsePeriod(r *http.Request) (statement.Period, error) {
	var p statement.Period

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	if from != "" {
		t, err := time.Parse(formDateLayout, from)
		if err != nil {
			return p, fmt.Errorf("%w: bad start date %q", core.ErrInvalidPeriod, from)
		}
		p.From = core.NewDate(t.Year(), int(t.Month()), t.Day())
	}

	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if to != "" {
		t, err := time.Parse(formDateLayout, to)
		if err != nil {
			return p, fmt.Errorf("%w: bad end date %q", core.ErrInvalidPeriod, to)
		}
		p.To = core.NewDate(t.Year(), int(t.Month()), t.Day())
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// selectionQuery rebuilds the current selection as a query string so
// the download links repeat the on-screen request.
func selectionQuery(data *pageData) string {
	q := url.Values{}
	q.Set("ledger", data.Ledger)
	if data.Customer != "" {
		q.Set("customer", data.Customer)
	}
	if data.From != "" {
		q.Set("from", data.From)
	}
	if data.To != "" {
		q.Set("to", data.To)
	}
	return q.Encode()
}

// attachmentName builds the download filename for a single statement.
func attachmentName(customer, ext string) string {
	return fmt.Sprintf("%s_Statement_%s.%s",
		sanitizeFilename(customer), time.Now().Format(core.DisplayDateLayout), ext)
}

// sanitizeFilename keeps letters, digits, dashes and underscores,
// mapping everything else to underscores.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
}

func serveDownload(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
