package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"meme-bot/internal/container"
	"meme-bot/internal/infrastructure/analyzer"
	"meme-bot/internal/infrastructure/camera"
	"meme-bot/internal/infrastructure/download"
	"meme-bot/internal/infrastructure/storage"
	"meme-bot/internal/logging"
)

func newCameraCommand() *cobra.Command {
	var (
		downloadMeme bool
		outDir       string
		device       int
	)

	cmd := &cobra.Command{
		Use:   "camera",
		Short: "Capture a photo from the camera and analyze it",
		Long:  "Open the device camera, capture one frame on Enter and send it for emotion analysis. Requires a build with -tags gocv.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if outDir == "" {
				outDir = cfg.DownloadDir
			}
			if !cmd.Flags().Changed("device") {
				device = cfg.CameraDevice
			}

			client, err := analyzer.NewHTTPClient(cfg.AnalyzerURL, nil)
			if err != nil {
				return err
			}

			c := container.New(storage.NewMemorySessionRepository(), client, logging.New("controller"))
			view := NewTerminalView(cmd.OutOrStdout(), plain)
			ctrl := c.NewController(view, camera.NewGoCVCamera(device), download.NewFileDownloader(outDir, nil))
			defer ctrl.Close()

			if err := ctrl.OpenCamera(cmd.Context()); err != nil {
				return err
			}

			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.EqualFold(strings.TrimSpace(line), "q") {
				ctrl.CloseCamera()
				return nil
			}

			if err := ctrl.CapturePhoto(cmd.Context()); err != nil {
				return err
			}

			if downloadMeme {
				return saveMeme(cmd, ctrl, outDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&downloadMeme, "download", "d", false, "save the generated meme as my-meme.jpg")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the downloaded meme (default DOWNLOAD_DIR)")
	cmd.Flags().IntVar(&device, "device", 0, "camera device index (default CAMERA_DEVICE)")

	return cmd
}
