package main

import (
	"os"
	"strconv"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/joho/godotenv"
	"github.com/rm-hull/retro-image-converter/cmd"
	"github.com/rm-hull/retro-image-converter/internal"
	"github.com/rm-hull/retro-image-converter/internal/raster/stage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var orientation string
	var opts internal.Options
	var interactive bool
	var port int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:     "retro-image-converter",
		Long:    `Retro LCD/CRT image converter`,
		Version: versioninfo.Short(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			if debug {
				log.SetLevel(log.DebugLevel)
			}
			if orientation == "" {
				return nil
			}
			o, err := stage.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			opts.Orientation = o
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", envBool("RETRO_DEBUG", false), "Enable debug logging (and pprof for api-server) - WARNING: do not enable in production")

	convertCmd := &cobra.Command{
		Use:   "convert <image> [--orientation vertical|horizontal] [--crt] [--glitch] [--enhance] [--stages <file.png>]",
		Short: "Convert an image and save it alongside the original",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if interactive {
				if term.IsTerminal(int(os.Stdin.Fd())) {
					return cmd.Convert(args[0], opts, os.Stdin, c.OutOrStdout())
				}
				log.Warn("stdin is not a terminal, ignoring --interactive")
			}
			return cmd.Convert(args[0], opts, nil, c.OutOrStdout())
		},
	}

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(opts, port, debug)
		},
	}

	for _, c := range []*cobra.Command{convertCmd, apiServerCmd} {
		c.Flags().StringVar(&orientation, "orientation", envString("RETRO_ORIENTATION", string(stage.Vertical)), "Subpixel stripe orientation: vertical or horizontal")
		c.Flags().BoolVar(&opts.ApplyCRT, "crt", envBool("RETRO_CRT", false), "Apply CRT lens warp")
		c.Flags().BoolVar(&opts.ApplyGlitch, "glitch", envBool("RETRO_GLITCH", false), "Apply channel-shift glitch")
		c.Flags().BoolVar(&opts.ColorEnhance, "enhance", envBool("RETRO_ENHANCE", false), "Enhance colour saturation")
	}
	convertCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for orientation and effects")
	convertCmd.Flags().StringVar(&opts.StagesPath, "stages", "", "Also write an animated PNG of every stage to this path")
	apiServerCmd.Flags().IntVar(&port, "port", envInt("RETRO_PORT", 8080), "Port to run HTTP server on")

	rootCmd.AddCommand(convertCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return fallback
}
