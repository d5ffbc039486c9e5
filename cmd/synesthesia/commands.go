package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Conceptual-Machines/synesthesia-api/internal/config"
	"github.com/Conceptual-Machines/synesthesia-api/internal/export"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

var errNoInput = errors.New("no input given")

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print the raw mapping as JSON"}
}

func scaleFlag() cli.Flag {
	return &cli.StringFlag{Name: "scale", Aliases: []string{"s"}, Usage: "pentatonic, major or minor"}
}

// newApp builds the command tree writing to out
func newApp(out io.Writer) *cli.Command {
	cfg := config.Load()

	textOptions := func(cmd *cli.Command) (mapping.TextOptions, error) {
		name := cmd.String("scale")
		if name == "" {
			name = cfg.DefaultScale
		}
		scale, err := mapping.ParseScale(name)
		if err != nil {
			return mapping.TextOptions{}, err
		}
		return mapping.TextOptions{Scale: scale, NoteDuration: cfg.NoteDuration}, nil
	}

	return &cli.Command{
		Name:   "synesthesia",
		Usage:  "hear text, colors and numbers",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:      "detect",
				Usage:     "classify content as color, number or text",
				ArgsUsage: "<content>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					c := mapping.Classify(joinArgs(cmd))
					if cmd.Bool("json") {
						return writeJSON(out, c)
					}
					fmt.Fprintln(out, renderClassification(c))
					return nil
				},
			},
			{
				Name:      "map",
				Usage:     "detect content and map it",
				ArgsUsage: "<content>",
				Flags:     []cli.Flag{jsonFlag(), scaleFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					opts, err := textOptions(cmd)
					if err != nil {
						return err
					}
					result, err := mapping.MapAuto(joinArgs(cmd), opts)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return writeJSON(out, result)
					}
					fmt.Fprintln(out, renderClassification(result.Detected))
					fmt.Fprintln(out, renderAuto(result))
					return nil
				},
			},
			{
				Name:      "text",
				Usage:     "map text to a note sequence",
				ArgsUsage: "<text>",
				Flags:     []cli.Flag{jsonFlag(), scaleFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					opts, err := textOptions(cmd)
					if err != nil {
						return err
					}
					m := mapping.MapText(joinArgs(cmd), opts)
					if cmd.Bool("json") {
						return writeJSON(out, m)
					}
					fmt.Fprintln(out, renderText(m))
					return nil
				},
			},
			{
				Name:      "color",
				Usage:     "map a hex color to sound",
				ArgsUsage: "<#rrggbb>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return errNoInput
					}
					m, err := mapping.MapColor(cmd.Args().First())
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return writeJSON(out, m)
					}
					fmt.Fprintln(out, renderColor(m))
					return nil
				},
			},
			{
				Name:      "number",
				Usage:     "map a number to a pattern",
				ArgsUsage: "<number>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return errNoInput
					}
					n, err := mapping.ParseNumber(cmd.Args().First())
					if err != nil {
						return err
					}
					m, err := mapping.MapNumber(n)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return writeJSON(out, m)
					}
					fmt.Fprintln(out, renderNumber(m))
					return nil
				},
			},
			{
				Name:  "live",
				Usage: "remap content as you type",
				Flags: []cli.Flag{scaleFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts, err := textOptions(cmd)
					if err != nil {
						return err
					}
					_, err = tea.NewProgram(newLiveModel(opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
					return err
				},
			},
			{
				Name:      "midi",
				Usage:     "export text as a Standard MIDI File",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					scaleFlag(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "synesthesia.mid", Usage: "output file, - for stdout"},
					&cli.FloatFlag{Name: "bpm", Value: export.DefaultBPM, Usage: "tempo in beats per minute"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					text := joinArgs(cmd)
					if strings.TrimSpace(text) == "" {
						return errNoInput
					}
					opts, err := textOptions(cmd)
					if err != nil {
						return err
					}
					seq := mapping.MapText(text, opts)
					return writeMIDIFile(out, cmd.String("out"), seq, cmd.Float("bpm"))
				},
			},
		},
	}
}

func writeMIDIFile(out io.Writer, path string, seq mapping.TextMapping, bpm float64) error {
	opts := export.MIDIOptions{BPM: bpm}
	if path == "-" {
		_, err := export.WriteMIDI(out, seq, opts)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	n, err := export.WriteMIDI(f, seq, opts)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("wrote %d notes (%d bytes) to %s", len(seq.Mappings), n, path)))
	return nil
}

func joinArgs(cmd *cli.Command) string {
	return strings.Join(cmd.Args().Slice(), " ")
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
