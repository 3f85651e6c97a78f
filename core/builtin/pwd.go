package builtin

import "fmt"

// Pwd prints the current working directory. It takes no operands.
func Pwd(vos OS) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the current working directory.",
	}

	return cmd.Run(vos, func() int {
		if len(cmd.Flags().Args()) != 0 {
			fmt.Fprintln(vos.Stderr(), "pwd: too many arguments")
			return 1
		}

		wd, err := vos.Getwd()
		if err != nil {
			fmt.Fprintf(vos.Stderr(), "pwd: %v\n", err)
			return 1
		}

		fmt.Fprintln(vos.Stdout(), wd)
		return 0
	})
}
