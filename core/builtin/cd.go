package builtin

import "fmt"

// Cd changes the working directory; with no operand it changes to $HOME.
func Cd(vos OS) int {
	cmd := &SimpleCommand{
		Use:   "cd [DIR]",
		Short: "Change the working directory.",
	}

	return cmd.Run(vos, func() int {
		args := cmd.Flags().Args()

		var dir string
		switch len(args) {
		case 0:
			dir = vos.Getenv("HOME")
			if dir == "" {
				fmt.Fprintln(vos.Stderr(), "cd: HOME not set")
				return 1
			}
		case 1:
			dir = args[0]
		default:
			fmt.Fprintln(vos.Stderr(), "cd: too many arguments")
			return 1
		}

		if err := vos.Chdir(dir); err != nil {
			fmt.Fprintf(vos.Stderr(), "cd: %v\n", err)
			return 1
		}
		return 0
	})
}
