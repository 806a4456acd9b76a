package main

import (
	"github.com/brewhouse/beanfall"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the landing page demo.",
	Long: "`run` opens a scrolling landing page. Scroll down (wheel, arrows, " +
		"space, or B to jump) to reach the bean section and start the beans. " +
		"R remounts the scene, U toggles mounting, F3 toggles debug output " +
		"and F12 takes a screenshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("fps") {
			cfg.ShowFPS, _ = flags.GetBool("fps")
		}
		if flags.Changed("debug") {
			cfg.Debug, _ = flags.GetBool("debug")
		}
		if dir, _ := flags.GetString("screenshots"); dir != "" {
			cfg.ScreenshotDir = dir
		}

		if hostOnly, _ := flags.GetBool("host-only"); hostOnly {
			return runHost(cfg)
		}

		game, err := beanfall.NewLandingPage(cfg)
		if err != nil {
			return err
		}
		if path, _ := flags.GetString("script"); path != "" {
			script, err := beanfall.LoadScriptFile(path)
			if err != nil {
				return err
			}
			exit, _ := flags.GetBool("exit")
			game.SetScript(script, exit)
		}
		return beanfall.Run(game, cfg.RunConfig())
	},
}

// runHost runs a bare, transparent SceneHost that starts right away.
func runHost(cfg beanfall.Config) error {
	host := beanfall.NewSceneHost(cfg.HostConfig())
	host.SetDebugMode(cfg.Debug)
	host.Activate()
	if err := host.Mount(); err != nil {
		return err
	}
	rc := cfg.RunConfig()
	rc.Transparent = true
	return beanfall.Run(host, rc)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("fps", false, "show the FPS overlay")
	runCmd.Flags().Bool("debug", false, "log lifecycle events and frame stats")
	runCmd.Flags().String("script", "", "JSON script of scrolls, waits and screenshots")
	runCmd.Flags().Bool("exit", false, "exit once the script has finished")
	runCmd.Flags().String("screenshots", "", "screenshot directory")
	runCmd.Flags().Bool("host-only", false, "run the bean scene alone in a transparent window")
}
