package cli

func regCommands() {
	//Config
	configCmd.AddCommand(config_initCmd)

	//Root
	rootCmd.AddCommand(verifierCmd)
	rootCmd.AddCommand(faucetCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}
