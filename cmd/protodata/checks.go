package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"protodata-gen/internal/emitter"
)

var (
	chkMessage string
	chkMode    string
	chkForce   bool
	chkGo      bool
	chkPackage string
)

func init() {
	addSchemaFlags(checksCmd)
	checksCmd.Flags().StringVar(&chkMessage, "message", "", "полное имя сообщения")
	checksCmd.Flags().StringVar(&chkMode, "mode", "early-exit", "режим проверок: early-exit или collect")
	checksCmd.Flags().BoolVar(&chkForce, "force", false, "эмитировать и для сообщения без правил")
	checksCmd.Flags().BoolVar(&chkGo, "go", false, "отрисовать Go метод Validate вместо списка проверок")
	checksCmd.Flags().StringVar(&chkPackage, "package", "validate", "имя пакета для Go отрисовки")
	checksCmd.MarkFlagRequired("message")
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Эмитировать проверки правил сообщения",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSchema()
		if err != nil {
			return err
		}
		logSchemaLoaded()

		var mode emitter.Mode
		switch chkMode {
		case "early-exit":
			mode = emitter.ModeEarlyExit
		case "collect":
			mode = emitter.ModeCollect
		default:
			return fmt.Errorf("unknown mode %q", chkMode)
		}

		list, err := emitter.Emit(set, chkMessage, mode, chkForce)
		if err != nil {
			return err
		}
		if list == nil {
			logger.Info("message has no rules, nothing emitted")
			return nil
		}

		if chkGo {
			src, err := emitter.RenderGo(set, list, chkPackage)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(src)
			return err
		}

		for _, c := range list.Fields {
			fmt.Printf("%s %s: %s\n", c.Field, c.Rule, c.Msg)
		}
		for _, c := range list.Cross {
			fmt.Printf("<message> %s: %s\n", c.Rule, c.Msg)
		}
		return nil
	},
}
