package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	gb "github.com/t7a/gridbase"
)

func init() {
	var debug string
	debug = os.Getenv("DEBUG")
	if debug == "1" {
		log.SetLevel(log.DebugLevel)
	}
	logrus.SetReportCaller(true)
	formatter := &logrus.TextFormatter{
		CallerPrettyfier: caller(),
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyFile: "caller",
		},
	}
	formatter.TimestampFormat = "15:04:05.999999999"
	logrus.SetFormatter(formatter)
}

// caller returns string presentation of log caller which is formatted as
// `/path/to/file.go:line_number`. e.g. `/internal/app/api.go:25`
func caller() func(*runtime.Frame) (function string, file string) {
	return func(f *runtime.Frame) (function string, file string) {
		p, _ := os.Getwd()
		return "", fmt.Sprintf("%s:%d gid %d", strings.TrimPrefix(f.File, p), f.Line, gb.GetGID())
	}
}

type Opts struct {
	Create    bool
	Write     bool
	Read      bool
	Exists    bool
	Total     bool
	Dims      bool
	Snapshot  bool
	Log       bool
	Restore   bool
	Size      bool
	Dir       string
	Pos       string
	Filename  string
	Message   string
	Ref       string
	Shape     string
	Chunks    string
	Dtype     string
	Overwrite bool
	Out       bool `docopt:"-o"`
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {

	usage := `gridbase

Usage:
  gb create <dir> --shape=<shape> --chunks=<chunks> [--dtype=<dtype>] [--overwrite]
  gb write <dir> <pos> <filename>
  gb read <dir> <pos> [-o <filename>]
  gb exists <dir> <pos>
  gb total <dir>
  gb dims <dir>
  gb snapshot <dir> <message>
  gb log <dir>
  gb restore <dir> <ref>
  gb size <dir>

Options:
  -h --help     Show this screen.
  --version     Show version.
`
	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.0")
	var opts Opts
	err := o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}
	log.Debug(opts)

	switch true {
	case opts.Create:
		msg, err := create(opts)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(msg)
	case opts.Write:
		id, err := writeBlock(opts)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Printf("chunk %d\n", id)
	case opts.Read:
		block, err := readBlock(opts)
		if err != nil {
			log.Error(err)
			return 42
		}
		if opts.Out {
			err = ioutil.WriteFile(opts.Filename, block.Data, 0644)
			if err != nil {
				log.Error(err)
				return 43
			}
		} else {
			_, err = os.Stdout.Write(block.Data)
			if err != nil {
				log.Error(err)
				return 25
			}
		}
	case opts.Exists:
		db, pos, err := openPos(opts)
		if err != nil {
			log.Error(err)
			return 42
		}
		ok, err := db.BlockExists(pos)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(ok)
	case opts.Total:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		total, err := db.TotalChunks()
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(total)
	case opts.Dims:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(joinInts(db.GridDims()))
	case opts.Snapshot:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		err = db.VC().Snapshot(opts.Message)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println("snapshot recorded")
	case opts.Log:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		lines, err := db.VC().Log()
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(strings.Join(lines, "\n"))
	case opts.Restore:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		err = db.VC().Restore(opts.Ref)
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Printf("restored %s\n", opts.Ref)
	case opts.Size:
		db, err := gb.Open(opts.Dir)
		if err != nil {
			log.Error(err)
			return 42
		}
		n, err := db.Size()
		if err != nil {
			log.Error(err)
			return 42
		}
		fmt.Println(n)
	}

	return 0
}

func create(opts Opts) (msg string, err error) {
	shape, err := parseInts(opts.Shape)
	if err != nil {
		return "", err
	}
	chunks, err := parseInts(opts.Chunks)
	if err != nil {
		return "", err
	}
	dt := gb.DefaultDtype
	if opts.Dtype != "" {
		dt, err = gb.ParseDtype(opts.Dtype)
		if err != nil {
			return "", err
		}
	}
	db := gb.Db{Dir: opts.Dir, Shape: shape, Chunks: chunks, Dtype: dt}
	_, res, err := db.Create(opts.Overwrite)
	if err != nil {
		return "", err
	}
	if res == gb.AlreadyExisted {
		return fmt.Sprintf("already exists: %s", opts.Dir), nil
	}
	return fmt.Sprintf("created %s", opts.Dir), nil
}

func writeBlock(opts Opts) (id uint64, err error) {
	db, pos, err := openPos(opts)
	if err != nil {
		return 0, err
	}
	buf, err := ioutil.ReadFile(opts.Filename)
	if err != nil {
		return 0, err
	}
	block := &gb.Block{Shape: db.Chunks, Dtype: db.Dtype, Data: buf}
	return db.WriteBlock(block, pos)
}

func readBlock(opts Opts) (block *gb.Block, err error) {
	db, pos, err := openPos(opts)
	if err != nil {
		return nil, err
	}
	return db.ReadBlock(pos)
}

func openPos(opts Opts) (db *gb.Db, pos []int, err error) {
	db, err = gb.Open(opts.Dir)
	if err != nil {
		return nil, nil, err
	}
	pos, err = parseInts(opts.Pos)
	if err != nil {
		return nil, nil, err
	}
	return db, pos, nil
}

func parseInts(s string) (out []int, err error) {
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("malformed integer list: %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(ints []int) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
