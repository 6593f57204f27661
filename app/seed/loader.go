package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inboxfolio/inboxfolio/app/email"
)

// File is the on-disk seed format: a list of sample emails whose fields
// mirror the ingestion payload, so seeds travel the same pipeline as live
// traffic and obey the same invariants.
type File struct {
	Emails []email.Payload `yaml:"emails"`
}

// Load reads and validates a YAML seed file. A missing file is not an
// error; it simply yields no seeds.
func Load(path string) ([]email.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, entry := range file.Emails {
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("invalid seed entry %d: %w", i, err)
		}
	}

	return file.Emails, nil
}

func validateEntry(entry email.Payload) error {
	requiredFields := map[string]string{
		"subject":     entry.Subject,
		"from_email":  entry.FromEmail,
		"to_email":    entry.ToEmail,
		"received_at": entry.ReceivedAt,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	return nil
}
