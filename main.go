package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"goblog/config"
	"goblog/database"
	"goblog/logger"
	"goblog/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close db err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

const configFile = "goblog.toml"

func showSetting() {
	fmt.Println("current panel settings as follows:")
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("db path:", config.GetDBPath())
	fmt.Println("log folder:", config.GetLogFolder())
	fmt.Println("upload folder:", config.GetUploadFolderPath())
	fmt.Println("uploads enabled:", config.IsUploadsEnabled())
}

func updateSetting(listen string, port int, secret, dbFolder, logFolder, uploadFolder, uploads string) {
	var uploadsFlag *bool
	if uploads != "" {
		v := uploads == "true"
		uploadsFlag = &v
	}
	err := config.UpdateFileSetting(configFile, listen, port, secret, dbFolder, logFolder, uploadFolder, uploadsFlag)
	if err != nil {
		fmt.Println("update setting failed:", err)
		return
	}
	fmt.Println("settings saved to", configFile)
}

func resetSetting() {
	if err := config.ResetFileSetting(configFile); err != nil {
		fmt.Println("reset setting failed:", err)
		return
	}
	fmt.Println("settings reset, using environment and defaults")
}

func checkpointDB() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := database.Checkpoint(); err != nil {
		fmt.Println("checkpoint failed:", err)
	} else {
		fmt.Println("checkpoint success")
	}
}

func main() {
	// .env is optional; the environment wins over goblog.toml
	_ = godotenv.Load()
	if err := config.LoadFile(configFile); err != nil {
		fmt.Println("load config file failed:", err)
	}

	var rootCmd = &cobra.Command{
		Use: "goblog",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect or change settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var (
		listen       string
		port         int
		secret       string
		dbFolder     string
		logFolder    string
		uploadFolder string
		uploads      string
	)
	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings in " + configFile,
		Run: func(cmd *cobra.Command, args []string) {
			updateSetting(listen, port, secret, dbFolder, logFolder, uploadFolder, uploads)
		},
	}
	updateCmd.Flags().StringVar(&listen, "listen", "", "panel listen address")
	updateCmd.Flags().IntVar(&port, "port", 0, "panel listen port")
	updateCmd.Flags().StringVar(&secret, "secret", "", "session signing secret")
	updateCmd.Flags().StringVar(&dbFolder, "db-folder", "", "database folder")
	updateCmd.Flags().StringVar(&logFolder, "log-folder", "", "log folder")
	updateCmd.Flags().StringVar(&uploadFolder, "upload-folder", "", "upload folder")
	updateCmd.Flags().StringVar(&uploads, "uploads", "", "enable image uploads (true/false)")

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove " + configFile + ", restoring defaults",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var checkpointCmd = &cobra.Command{
		Use:   "checkpoint",
		Short: "Flush the database WAL",
		Run: func(cmd *cobra.Command, args []string) {
			checkpointDB()
		},
	}

	settingCmd.AddCommand(showCmd, updateCmd, resetCmd)
	rootCmd.AddCommand(runCmd, settingCmd, checkpointCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
