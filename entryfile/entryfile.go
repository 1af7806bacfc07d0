package entryfile

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sporadisk/worklog/timesheet"
)

// File is a batch of entry rows prepared in an editor instead of a form.
type File struct {
	Task int   `yaml:"task"`
	Rows []Row `yaml:"rows"`
}

type Row struct {
	Date  string `yaml:"date"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Note  string `yaml:"note"`
}

// TimesheetRows converts the file's rows into validator input.
func (f *File) TimesheetRows() []timesheet.Row {
	rows := make([]timesheet.Row, len(f.Rows))
	for i, r := range f.Rows {
		rows[i] = timesheet.Row{
			WorkDate:  r.Date,
			StartTime: r.Start,
			EndTime:   r.End,
			Note:      r.Note,
		}
	}
	return rows
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	if f.Task <= 0 {
		return nil, fmt.Errorf("entry file needs a positive task id, got %d", f.Task)
	}
	return &f, nil
}

// Load reads and parses the entry file at path.
func Load(path string) (*File, error) {
	data, err := readLoop(path)
	if err != nil {
		return nil, fmt.Errorf("readLoop: %w", err)
	}
	return Parse(data)
}

// readLoop tries to read the file a lot. Editors tend to truncate-then-write,
// so the first read after a save event can come back empty.
func readLoop(path string) ([]byte, error) {
	for i := 0; i < 100; i++ {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("os.Open: %w", err)
		}

		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll: %w", err)
		}

		if len(b) == 0 {
			time.Sleep(time.Millisecond * 100)
			continue
		}

		return b, nil
	}

	return nil, fmt.Errorf("readLoop: too many retries")
}
