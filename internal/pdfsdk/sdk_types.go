package pdfsdk

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/openmined/pdfdesk/internal/version"
)

const (
	HeaderUserAgent = "User-Agent"
	HeaderVersion   = "X-PDFDesk-Version"
	HeaderDeviceID  = "X-PDFDesk-Device-Id"
	HeaderRequestID = "X-Request-Id"
)

var UserAgent = fmt.Sprintf("PDFDesk/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// DeviceID is an app-scoped hash of the machine id, never the raw id.
var DeviceID = func() string {
	id, err := machineid.ProtectedID(strings.ToLower(version.AppName))
	if err != nil {
		return "unknown"
	}
	return id
}()

// Timestamp decodes the server's datetimes, which may omit the zone (treated as UTC).
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := jsonUnmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("timestamp: unrecognized format %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return jsonMarshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.Time.UTC().Format(time.RFC3339), nil
}
