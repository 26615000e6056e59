// Command uhfmac-rx demonstrates the MAC receive path: it reads a
// stream of 128-byte frames (as produced by uhfmac-tx -frames) and
// writes out the reassembled packet, adapted from the teacher's
// examples/receiver demo.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ex2-sdr/uhfmac/fec"
	"github.com/ex2-sdr/uhfmac/mac"
	"github.com/ex2-sdr/uhfmac/mac/frame"
)

func schemeByName(name string) (fec.Scheme, error) {
	switch name {
	case "nofec":
		return fec.NoFEC, nil
	case "conv12":
		return fec.CCSDSConvolutionalCodingR12, nil
	default:
		return 0, fmt.Errorf("unknown or unimplemented scheme %q (use nofec or conv12)", name)
	}
}

func main() {
	schemeName := flag.String("scheme", "conv12", "FEC scheme: nofec | conv12")
	modulation := flag.Uint("modulation", 1, "modulation id (informational; the decoder accepts any matching the sender)")
	framesPath := flag.String("frames", "", "path to read the frame stream from (default: stdin)")
	packetPath := flag.String("packet", "", "path to write the recovered packet to (default: stdout)")
	verbose := flag.Bool("verbose", false, "verbose (development) logging")
	flag.Parse()

	var zlog *zap.Logger
	var err error
	if *verbose {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()
	log := zlog.Sugar()

	scheme, err := schemeByName(*schemeName)
	if err != nil {
		log.Fatalw("bad scheme", "err", err)
	}

	m, err := mac.New(scheme, uint8(*modulation))
	if err != nil {
		log.Fatalw("new mac", "err", err)
	}

	in := io.Reader(os.Stdin)
	if *framesPath != "" {
		f, err := os.Open(*framesPath)
		if err != nil {
			log.Fatalw("open frames", "err", err)
		}
		defer f.Close()
		in = f
	}

	buf := make([]byte, frame.Size)
	framesRead := 0
	for {
		if _, err := io.ReadFull(in, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			log.Fatalw("read frame", "err", err)
		}
		framesRead++

		status, err := m.ProcessFrame(buf)
		if err != nil {
			log.Warnw("process frame failed", "frame", framesRead, "err", err)
			continue
		}
		if status == mac.PacketReady {
			log.Infow("packet reassembled", "frames", framesRead, "bytes", len(m.PacketBuffer()))
			if err := writePacket(*packetPath, m.PacketBuffer()); err != nil {
				log.Fatalw("write packet", "err", err)
			}
			return
		}
	}

	log.Warnw("frame stream ended without a complete packet", "frames", framesRead)
}

func writePacket(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
