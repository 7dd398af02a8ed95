// Package ridedine embeds the Ride&Dine core in another Go program: vendor
// recommendation by budget, distance and cuisine, and nearest-agent dispatch.
//
// Vendors and agents come from files, from Redis/Valkey, or from values handed
// to the client directly:
//
//	client, _ := ridedine.New(ctx,
//	    ridedine.WithVendorFile("data/vendors.csv"),
//	    ridedine.WithAgentFile("data/riders.json"),
//	)
//	defer client.Close()
//
//	vendors, _ := client.Recommend(ctx, ridedine.Preferences{
//	    Budget: 200, Time: "12:30", MaxDistanceKm: 0.5, Cuisine: "Bakery/Pastries",
//	})
//	assignment, ok, _ := client.NearestAgent(ctx)
package ridedine
