// Package carboncue is a client library for grid carbon intensity data and
// Software Carbon Intensity (SCI) scoring.
//
// It resolves cloud provider regions to Electricity Maps grid zones (see the
// region package), retrieves current carbon intensity with a per-region TTL
// cache, classifies upstream failures into a closed error taxonomy, and
// computes SCI scores from emissions inputs.
//
// Typical use:
//
//	cfg := carboncue.DefaultConfig()
//	cfg.APIKey = os.Getenv("CARBONCUE_API_KEY")
//	client, err := carboncue.NewClient(cfg, logger)
//	if err != nil {
//		return err
//	}
//	err = client.Session(ctx, func(ctx context.Context) error {
//		intensity, err := client.GetCurrentIntensity(ctx, "us-west-2", carboncue.ProviderAWS)
//		...
//	})
package carboncue
