// Command wavecap inspects oscilloscope waveform captures: vendor CSV
// exports and raw binary sample dumps, optionally compressed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tracekit/wavecap"
	"github.com/tracekit/wavecap/endian"
	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/rawbin"
	"github.com/tracekit/wavecap/series"
)

var log zerolog.Logger

var (
	flagVerbose bool
	flagDebug   bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "wavecap",
	Short: "Inspect oscilloscope waveform captures",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&flagVerbose, "verbose", false, "enable informational logging")
	flags.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the progress indicator")

	viper.SetEnvPrefix("WAVECAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("max_points", 2000)
	viper.SetDefault("detect.transition_weight", rawbin.DefaultTransitionWeight)
	viper.SetDefault("detect.unique_weight", rawbin.DefaultUniqueWeight)

	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newBinaryCmd())
	rootCmd.AddCommand(newFormatsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wavecap: %v\n", err)
		os.Exit(1)
	}
}

func initLogging() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log = zerolog.New(output).With().Timestamp().Logger()

	switch {
	case flagDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case flagVerbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// progressFunc reports load progress on stderr when it is a terminal.
// Redirected or quiet runs get no indicator.
func progressFunc() progress.Func {
	if flagQuiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return func(current, total int64, message string) {
		if total > 0 {
			fmt.Fprintf(os.Stderr, "\r\x1b[K%s (%d%%)", message, current*100/total)
		} else {
			fmt.Fprintf(os.Stderr, "\r\x1b[K%s", message)
		}
		if current >= total {
			fmt.Fprintln(os.Stderr)
		}
	}
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <capture>",
		Short: "Show capture metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			md, s, err := wavecap.Load(cmd.Context(), args[0], progressFunc())
			if err != nil {
				return err
			}
			log.Info().
				Str("format", md.Format()).
				Int("points", s.Len()).
				Dur("elapsed", time.Since(started)).
				Msg("capture loaded")

			renderInfo(cmd.OutOrStdout(), md, s)

			return nil
		},
	}

	return cmd
}

func renderInfo(out io.Writer, md series.Metadata, s *series.Series) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Key", "Value"})

	tw.AppendRow(table.Row{"Points", s.Len()})
	tw.AppendRow(table.Row{"Duration", fmt.Sprintf("%g %s", s.Duration(), md.HorizontalUnits())})
	if s.Len() > 0 {
		lo, hi := valueRange(s.Value)
		tw.AppendRow(table.Row{"Min", fmt.Sprintf("%g %s", lo, md.VerticalUnits())})
		tw.AppendRow(table.Row{"Max", fmt.Sprintf("%g %s", hi, md.VerticalUnits())})
	}
	if numbers := s.ChannelNumbers(); numbers != nil {
		tw.AppendRow(table.Row{"Series Channels", fmt.Sprint(numbers)})
	}
	for _, key := range md.Keys() {
		tw.AppendRow(table.Row{key, strings.Join(md[key], ", ")})
	}

	tw.Render()
}

func valueRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

func newDumpCmd() *cobra.Command {
	var (
		maxPoints int
		channel   int
	)

	cmd := &cobra.Command{
		Use:   "dump <capture>",
		Short: "Print time,value rows, decimated for display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := wavecap.Load(cmd.Context(), args[0], progressFunc())
			if err != nil {
				return err
			}

			return writeRows(cmd.OutOrStdout(), s, channel, maxPoints)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&maxPoints, "max-points", viper.GetInt("max_points"),
		"decimation budget, 0 disables decimation")
	flags.IntVar(&channel, "channel", 0, "channel number to dump (default: primary)")

	return cmd
}

func writeRows(out io.Writer, s *series.Series, channel, maxPoints int) error {
	if channel > 0 {
		if _, ok := s.Channel(channel); !ok {
			return fmt.Errorf("capture has no channel %d (available: %v)", channel, s.ChannelNumbers())
		}
	}
	if maxPoints > 0 {
		s = wavecap.Decimate(s, maxPoints)
	}

	values := s.Value
	if channel > 0 {
		values, _ = s.Channel(channel)
	}

	w := bufio.NewWriterSize(out, 64*1024)
	for i, t := range s.Time {
		fmt.Fprintf(w, "%g,%g\n", t, values[i])
	}

	return w.Flush()
}

func newBinaryCmd() *cobra.Command {
	var (
		element    string
		order      string
		rate       float64
		channels   int
		channel    int
		offset     int64
		length     int64
		scale      float64
		dcOffset   float64
		autoOffset bool
		maxPoints  int
	)

	cmd := &cobra.Command{
		Use:   "binary <dump>",
		Short: "Decode a raw binary sample dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elem, err := rawbin.ParseElementType(element)
			if err != nil {
				return err
			}
			engine, err := endian.Parse(order)
			if err != nil {
				return err
			}

			desc := rawbin.NewDescriptor(elem, rate)
			desc.Engine = engine
			desc.ChannelCount = channels
			desc.ChannelIndex = channel
			desc.Offset = offset
			desc.Length = length
			desc.Scale = scale
			desc.DCOffset = dcOffset

			if autoOffset {
				detected, err := wavecap.DetectHeaderOffset(args[0], desc,
					rawbin.WithScoreWeights(
						viper.GetFloat64("detect.transition_weight"),
						viper.GetFloat64("detect.unique_weight"),
					))
				if err != nil {
					return fmt.Errorf("header offset detection failed: %w", err)
				}
				log.Info().Int64("offset", detected).Msg("detected header offset")
				desc.Offset = detected
			}

			md, s, err := wavecap.LoadBinary(cmd.Context(), args[0], desc, progressFunc())
			if err != nil {
				return err
			}
			log.Info().Str("format", md.Format()).Int("points", s.Len()).Msg("dump decoded")

			return writeRows(cmd.OutOrStdout(), s, 0, maxPoints)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&element, "element", "int16", "sample element type: int8..int32, uint8..uint32, float32, float64")
	flags.StringVar(&order, "order", "little", "byte order: little or big")
	flags.Float64Var(&rate, "rate", 1e6, "sample rate in Hz")
	flags.IntVar(&channels, "channels", 1, "number of interleaved channels")
	flags.IntVar(&channel, "channel", 0, "zero-based channel to extract")
	flags.Int64Var(&offset, "offset", 0, "header bytes to skip before the payload")
	flags.Int64Var(&length, "length", 0, "payload bytes to decode (0 means to end of file)")
	flags.Float64Var(&scale, "scale", 1, "multiplier applied to each raw sample")
	flags.Float64Var(&dcOffset, "dc-offset", 0, "offset added after scaling")
	flags.BoolVar(&autoOffset, "auto-offset", false, "detect the header offset heuristically")
	flags.IntVar(&maxPoints, "max-points", 0, "decimation budget, 0 disables decimation")

	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported capture formats in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range wavecap.SupportedFormats() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
