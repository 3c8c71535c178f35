package calculator

import (
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

type profileRequest struct {
	BirthDate   string `json:"birth_date"`
	Name        string `json:"name,omitempty"`
	Locale      string `json:"locale,omitempty"`
	KeepMasters bool   `json:"keep_masters,omitempty"`
}

type reduceRequest struct {
	Number      int  `json:"number"`
	KeepMasters bool `json:"keep_masters,omitempty"`
}

type describeRequest struct {
	Category string `json:"category"`
	Number   int    `json:"number"`
	Locale   string `json:"locale,omitempty"`
}

type localesResponse struct {
	Locales []domain.LocaleView `json:"locales"`
}

// maxWireNumber is the largest magnitude a Struct number value holds exactly.
const maxWireNumber = 1<<53 - 1

// checkWireNumber rejects numbers a Struct would silently round.
func checkWireNumber(n int) error {
	if n > maxWireNumber || n < -maxWireNumber {
		return apperrors.New(apperrors.CodeNumberInvalid, "number exceeds wire precision").With("Value", strconv.Itoa(n))
	}
	return nil
}

// encodeStruct converts v to a Struct through its JSON form.
func encodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal message fields: %w", err)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return out, nil
}

// decodeStruct fills v from the JSON form of s. A nil Struct decodes as an
// empty object.
func decodeStruct(s *structpb.Struct, v any) error {
	fields := map[string]any{}
	if s != nil {
		fields = s.AsMap()
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}
