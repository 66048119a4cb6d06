package texel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/texel/internal/config"
	"github.com/esimov/texel/internal/logger"
	"github.com/esimov/texel/utils"
	"golang.org/x/term"
)

// PipeName is the file name that indicates stdin/stdout is being used.
const PipeName = "-"

// Ops describes where the processor reads from and writes to.
type Ops struct {
	Src, Dst string
	Workers  int
	// Status receives the human readable progress messages, stderr when nil.
	Status  io.Writer
	Spinner *utils.Spinner
	Logger  logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// result holds the relevant information about the filtering process and the generated image.
type result struct {
	path string
	err  error
}

func (op *Ops) log() logger.Logger {
	if op.Logger == nil {
		return logger.Nop()
	}
	return op.Logger
}

func (op *Ops) status() io.Writer {
	if op.Status == nil {
		return os.Stderr
	}
	return op.Status
}

// Execute runs the processor over the source. The source can be a regular file,
// a directory (processed recursively with a pool of workers), an http(s) URL or
// the pipe name. Directory sources write into the destination directory, which
// is created when missing; a directory destination for a single file receives
// the file under its derived output name.
func (op *Ops) Execute(p *Processor) error {
	src := op.Src

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(tmp.Name())
		if err := tmp.Close(); err != nil {
			return err
		}
		src = tmp.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	stop := op.handleSignals()
	defer stop()

	if op.Spinner != nil {
		op.Spinner.Start()
	}
	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = op.executeDir(p, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == PipeName:
		dst := op.Dst
		if info, statErr := os.Stat(dst); statErr == nil && info.IsDir() {
			name := src
			if src != op.Src {
				name = filepath.Base(op.Src)
			}
			dst = filepath.Join(dst, OutputName(name, p.Filter))
		}
		if dst != PipeName && !isValidExtension(filepath.Ext(dst), SupportedExtensions) {
			err = fmt.Errorf("%v file type not supported", filepath.Ext(dst))
			break
		}
		err = op.process(p, src, dst)
		op.printOpStatus(dst, err)
	default:
		err = fmt.Errorf("%s is not a regular file or directory", src)
	}

	if op.Spinner != nil {
		op.Spinner.Stop()
	}
	if err == nil {
		utils.NewReporter(op.status()).Elapsed(time.Since(now))
	}
	op.log().Info("exec", "execution finished", logger.Fields{
		"src":     op.Src,
		"filter":  string(p.Filter),
		"elapsed": time.Since(now).String(),
		"failed":  err != nil,
	})

	return err
}

// executeDir processes recursively the image files from the directory concurrently.
func (op *Ops) executeDir(p *Processor, src string) error {
	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
	}
	workers := config.ClampWorkers(op.Workers)

	var wg sync.WaitGroup
	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, SupportedExtensions)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var errs []error
	for res := range ch {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
		}
		op.printOpStatus(res.path, res.err)
	}

	if err := <-errc; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// consumer reads the path names from the paths channel and calls the processor against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, OutputName(src, p.Filter))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the processor over a single source and removes the destination on failure.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}
	op.track(out, true)
	defer op.track(out, false)

	defer func() {
		if err := src.Close(); err != nil {
			op.log().Warning("exec", "could not close the source file", logger.Fields{"path": in, "error": err.Error()})
		}
	}()

	err = p.Process(src, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		op.log().Error("exec", err, logger.Fields{"src": in, "dst": out})
		if out != PipeName {
			// remove the generated image file in case of an error
			os.Remove(out)
		}
		return err
	}
	op.log().Debug("exec", "image saved", logger.Fields{"src": in, "dst": out})

	return nil
}

// track registers the outputs being written so an interrupt can clean them up.
func (op *Ops) track(path string, active bool) {
	if path == PipeName {
		return
	}
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.inFlight == nil {
		op.inFlight = make(map[string]struct{})
	}
	if active {
		op.inFlight[path] = struct{}{}
	} else {
		delete(op.inFlight, path)
	}
}

// handleSignals captures CTRL-C, restores back the cursor visibility and removes
// the partially written outputs. The returned function releases the handler.
func (op *Ops) handleSignals() func() {
	signalChan := make(chan os.Signal, 1)
	quit := make(chan struct{})
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-signalChan:
			if op.Spinner != nil {
				op.Spinner.RestoreCursor()
			}
			op.mu.Lock()
			for path := range op.inFlight {
				os.Remove(path)
			}
			op.mu.Unlock()
			os.Exit(1)
		case <-quit:
		}
	}()

	return func() {
		signal.Stop(signalChan)
		close(quit)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.ReadCloser, io.WriteCloser, error) {
	var (
		src io.ReadCloser
		dst io.WriteCloser
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = io.NopCloser(os.Stdin)
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			src.Close()
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = nopWriteCloser{os.Stdout}
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the filtering process.
func (op *Ops) printOpStatus(fname string, err error) {
	report := utils.NewReporter(op.status())
	if err != nil {
		report.Failed(filepath.Base(fname), err)
		return
	}
	if fname != PipeName {
		report.Saved(filepath.Base(fname))
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(filepath.Ext(f.Name()), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	return utils.Contains(extensions, strings.ToLower(ext))
}
