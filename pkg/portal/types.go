package portal

import (
	"encoding/json"
	"strings"
)

// FlexID tolerates the id fields portals serve interchangeably as
// JSON numbers or strings.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}

	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexID(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*f = FlexID(num.String())
	return nil
}

// Channel is one raw portal channel record. Cmd carries the playable
// URL wrapped in protocol noise; nothing here is trusted for display
// until the reconciliation pipeline has run.
type Channel struct {
	ID      FlexID `json:"id"`
	Name    string `json:"name"`
	Cmd     string `json:"cmd"`
	Logo    string `json:"logo"`
	XMLTVID string `json:"xmltv_id"`
	GenreID FlexID `json:"tv_genre_id"`
}
