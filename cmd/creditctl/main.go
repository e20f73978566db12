// creditctl drives the transaction approval workflow from the terminal:
// users submit requests, admins review the shared queue.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"creditdesk/internal/auth"
	"creditdesk/internal/client"
	"creditdesk/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	cobra.OnInitialize(initConfig)

	root := &cobra.Command{
		Use:   "creditctl",
		Short: "Submit and review money-transfer requests",
		Long:  `creditctl talks to the creditdesk API: users submit transaction requests against their available credit, admins approve or reject pending ones.`,
	}

	root.PersistentFlags().String("server", "", "API base URL (overrides CREDITCTL_SERVER)")

	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(whoamiCmd())
	root.AddCommand(listCmd())
	root.AddCommand(createCmd())
	root.AddCommand(approveCmd())
	root.AddCommand(rejectCmd())
	root.AddCommand(creditCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("creditctl")
	viper.AutomaticEnv()

	viper.SetDefault("server", "http://localhost:5000")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("session_file", filepath.Join(home, ".creditctl", "session.db"))
	} else {
		viper.SetDefault("session_file", "session.db")
	}
}

func serverURL(cmd *cobra.Command) string {
	if flag, _ := cmd.Flags().GetString("server"); flag != "" {
		return flag
	}
	return viper.GetString("server")
}

func openTokenStore() (*client.TokenStore, error) {
	path := viper.GetString("session_file")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return client.OpenTokenStore(path)
}

// openAdapter builds the view adapter for the stored session. It fails when
// no token is stored; failed decodes also mean "log in again".
func openAdapter(cmd *cobra.Command) (*client.Adapter, func(), error) {
	store, err := openTokenStore()
	if err != nil {
		return nil, nil, err
	}

	token, err := store.Load()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if token == "" {
		store.Close()
		return nil, nil, fmt.Errorf("not logged in: run 'creditctl login' first")
	}

	identity, err := auth.DecodeToken(token)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("stored session is invalid, log in again: %w", err)
	}

	api := client.New(serverURL(cmd), token)
	adapter := client.NewAdapter(api, identity, terminalNotifier{}, promptConfirm)
	return adapter, func() { store.Close() }, nil
}

type terminalNotifier struct{}

func (terminalNotifier) Success(message string) {
	fmt.Println("✔ " + message)
}

func (terminalNotifier) Failure(message string) {
	fmt.Fprintln(os.Stderr, "✖ "+message)
}

// promptConfirm is the mandatory "are you sure" step before approving or
// rejecting; terminal states cannot be undone.
func promptConfirm(tx models.Transaction, target models.TransactionStatus) bool {
	verb := "approve"
	if target == models.StatusRejected {
		verb = "reject"
	}

	fmt.Printf("Are you sure you want to %s transaction %s ($%s, %q)? [y/N]: ",
		verb, tx.ID, tx.Amount.StringFixed(2), tx.Description)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
