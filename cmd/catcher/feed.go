package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
	"github.com/vovakirdan/pose-catcher/internal/classifier/remote"
)

var (
	flagFeed       string
	flagListen     string
	flagFeedBuffer int
)

// addFeedFlags registers the classifier feed flags on cmd.
func addFeedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFeed, "feed", "", "Replay recorded predictions from a YAML file")
	cmd.Flags().StringVar(&flagListen, "listen", "", "Accept predictions over HTTP/WebSocket on this address (host:port)")
	cmd.Flags().IntVar(&flagFeedBuffer, "feed-buffer", 8, "Frames buffered by the remote feed before the oldest is dropped")
}

// feed is an opened classifier source.
type feed struct {
	classifier.Classifier
	interval time.Duration // Poll cadence; 0 means as fast as frames arrive
	replay   *classifier.Replay
	close    func()
}

// openFeed opens the feed selected by the flags. It returns a nil feed
// when neither --feed nor --listen is set. The remote server is bound
// before returning so that a busy address is a startup error.
func openFeed(ctx context.Context, logger *log.Logger) (*feed, error) {
	switch {
	case flagFeed != "" && flagListen != "":
		return nil, errors.New("--feed and --listen cannot be used together")

	case flagFeed != "":
		replay, err := classifier.LoadReplay(flagFeed)
		if err != nil {
			return nil, fmt.Errorf("cannot open classifier feed: %w", err)
		}
		logger.Info("replaying predictions", "path", flagFeed, "frames", replay.Len(), "interval", replay.Interval())
		return &feed{Classifier: replay, interval: replay.Interval(), replay: replay, close: func() {}}, nil

	case flagListen != "":
		ln, err := net.Listen("tcp", flagListen)
		if err != nil {
			return nil, fmt.Errorf("cannot open classifier feed: %w", err)
		}
		srv := remote.NewServer(logger.WithPrefix("feed"), flagFeedBuffer)
		serveCtx, cancel := context.WithCancel(ctx)
		served := make(chan struct{})
		go func() {
			defer close(served)
			if err := srv.Serve(serveCtx, ln); err != nil {
				logger.Error("classifier feed server stopped", "err", err)
			}
		}()
		logger.Info("waiting for predictions", "address", ln.Addr().String())

		// close returns once the listener is released
		return &feed{Classifier: srv, close: func() {
			cancel()
			srv.Close()
			<-served
			//nolint:errcheck // Usually already closed by the server
			ln.Close()
		}}, nil
	}

	return nil, nil
}
