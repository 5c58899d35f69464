package usecase

import (
	"encoding/base64"
	"strings"

	"github.com/x-xyz/swiftbid/domain"
)

const dataUriSchema = "data:"

// DecodeImageData accepts a base64 data uri (data:image/png;base64,...) or a
// bare base64 string and returns the raw bytes
func DecodeImageData(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, dataUriSchema) {
		// data:[<mediatype>][;base64],<data>
		uriParts := strings.SplitN(strings.TrimPrefix(data, dataUriSchema), ",", 2)
		if len(uriParts) < 2 || len(uriParts[1]) == 0 || !strings.HasSuffix(uriParts[0], ";base64") {
			return nil, domain.ErrBadParamInput
		}
		data = uriParts[1]
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	return b, nil
}
