package manifest

import "fmt"

type migration func(Snapshot) (Snapshot, error)

// migrations[v] turns a snapshot of version v into version v+1.
var migrations = [...]migration{
	VersionPreVersioning: migratePreVersioningToV1,
	Version1:             migrateV1ToV2,
}

// Migrate walks snap forward through every migration step until it reaches
// the latest schema.
func Migrate(snap Snapshot) (Manifest, error) {
	if snap == nil {
		return Manifest{}, &MigrationError{From: VersionPreVersioning, To: LatestVersion, Err: fmt.Errorf("nil snapshot")}
	}
	for snap.SchemaVersion() < LatestVersion {
		from := snap.SchemaVersion()
		next, err := migrations[from](snap)
		if err != nil {
			return Manifest{}, err
		}
		if next.SchemaVersion() != from+1 {
			return Manifest{}, &MigrationError{From: from, To: from + 1, Err: fmt.Errorf("step produced %s", next.SchemaVersion())}
		}
		snap = next
	}

	latest, ok := snap.(V2)
	if !ok {
		return Manifest{}, &MigrationError{From: snap.SchemaVersion(), To: LatestVersion, Err: fmt.Errorf("unexpected snapshot type %T", snap)}
	}
	return latest.Normalized(), nil
}

func migratePreVersioningToV1(snap Snapshot) (Snapshot, error) {
	prev, ok := snap.(PreVersioning)
	if !ok {
		return nil, &MigrationError{From: VersionPreVersioning, To: Version1, Err: fmt.Errorf("got %T", snap)}
	}
	return V1{
		Seed:            prev.Seed,
		MCVersion:       prev.MCVersion,
		Name:            prev.Name,
		Pins:            clonePins(prev.Pins),
		RecentLocations: orEmpty(prev.RecentLocations),
	}, nil
}

func migrateV1ToV2(snap Snapshot) (Snapshot, error) {
	prev, ok := snap.(V1)
	if !ok {
		return nil, &MigrationError{From: Version1, To: Version2, Err: fmt.Errorf("got %T", snap)}
	}
	return V2{
		ManifestVersion: int(Version2),
		Name:            prev.Name,
		World:           WorldSettings{Version: prev.MCVersion, Seed: prev.Seed},
		Pins:            clonePins(prev.Pins),
		RecentLocations: orEmpty(prev.RecentLocations),
	}, nil
}
