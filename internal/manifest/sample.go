package manifest

// Sample returns the template manifest used for new worlds and previews.
func Sample() Manifest {
	return Manifest{
		ManifestVersion: int(LatestVersion),
		Name:            "My World",
		World:           WorldSettings{Version: "1.21.3", Seed: 123},
		Pins: []Pin{
			{Name: "Spawn"},
		},
		RecentLocations: []Point{},
	}
}
