package exporter

import (
	"io"
	"log/slog"
	"os"
)

// writeReportFile creates path and hands it to write. The file is closed
// before returning; a close error is reported when write itself succeeded.
func writeReportFile(path string, write func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return write(file)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
