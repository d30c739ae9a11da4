// Package logging implements the asynchronous log sink: producers push
// already-formatted lines onto a buffered queue of 4096 entries, and a
// single dedicated goroutine drains them to an append-mode file, syncing
// periodically, mirroring the original implementation's spawn_logger.
// The queue is bounded: a line logged while it is full is dropped.
package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Level is one of the four recognised severities.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

func parseLevel(s string) Level {
	switch s {
	case "Debug":
		return Debug
	case "Warning":
		return Warning
	case "Error":
		return Error
	default:
		return Info
	}
}

// entry is one pre-formatted line, carrying its own severity so the
// drain goroutine can apply the configured filter threshold without
// re-parsing text.
type entry struct {
	level Level
	line  string
}

// Sink is the async, file-backed logger. Zero value is not usable; use
// New.
type Sink struct {
	queue     chan entry
	done      chan struct{}
	threshold Level
	logger    *logrus.Logger
	file      *os.File
}

// New opens path in append mode (creating it if necessary) and starts
// the drain goroutine. Callers must call Close on shutdown to flush the
// remaining queue and close the file, matching spec section 4.9's
// "drains remaining entries before exit" requirement.
func New(path string, threshold string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&lineFormatter{})

	s := &Sink{
		queue:     make(chan entry, 4096),
		done:      make(chan struct{}),
		threshold: parseLevel(threshold),
		logger:    logger,
		file:      f,
	}
	go s.drain()
	return s, nil
}

// lineFormatter renders exactly "[<timestamp>] <Level>: <text>\n",
// per spec section 4.9.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	level, _ := e.Data["level"].(string)
	return []byte(fmt.Sprintf("[%s] %s: %s\n", e.Time.Format(time.RFC3339), level, e.Message)), nil
}

func (s *Sink) drain() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case e, ok := <-s.queue:
			if !ok {
				s.file.Sync()
				s.file.Close()
				close(s.done)
				return
			}
			s.write(e)
		case <-ticker.C:
			s.file.Sync()
		}
	}
}

func (s *Sink) write(e entry) {
	logEntry := logrus.NewEntry(s.logger)
	logEntry.Time = time.Now()
	logEntry.Data = logrus.Fields{"level": e.level.String()}
	logEntry.Message = e.line
	line, err := s.logger.Formatter.Format(logEntry)
	if err != nil {
		return
	}
	s.file.Write(line)
}

// log is the common path for the leveled convenience methods below; it
// applies the threshold filter and never blocks the caller on I/O
// (the queue is large and consumed promptly by the drain goroutine).
func (s *Sink) log(level Level, format string, args ...interface{}) {
	if level < s.threshold {
		return
	}
	line := fmt.Sprintf(format, args...)
	select {
	case s.queue <- entry{level: level, line: line}:
	default:
		// Queue is catastrophically backed up; drop rather than block a
		// worker goroutine on logging.
	}
}

func (s *Sink) Debugf(format string, args ...interface{})   { s.log(Debug, format, args...) }
func (s *Sink) Infof(format string, args ...interface{})    { s.log(Info, format, args...) }
func (s *Sink) Warningf(format string, args ...interface{}) { s.log(Warning, format, args...) }
func (s *Sink) Errorf(format string, args ...interface{})   { s.log(Error, format, args...) }

// Close stops accepting new entries, drains whatever remains, and
// closes the underlying file. Blocks until the drain goroutine exits.
func (s *Sink) Close() {
	close(s.queue)
	<-s.done
}
