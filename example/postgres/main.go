// Demonstrates running the process store on Postgres. A disposable container
// is started via testcontainers, so a local Docker daemon is the only
// requirement besides the SPARQL endpoint.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/katyakrsn/heritage"
	"github.com/katyakrsn/heritage/helper"
)

func main() {
	godotenv.Load()

	terminate, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}
	defer terminate(context.Background())

	os.Setenv("HERITAGE_DB_DRIVER", helper.DriverPostgres)
	os.Setenv("HERITAGE_DB_HOST", "localhost")
	os.Setenv("HERITAGE_DB_PORT", dbPort)
	os.Setenv("HERITAGE_DB_DATABASE", "database")
	os.Setenv("HERITAGE_DB_USERNAME", "user")
	os.Setenv("HERITAGE_DB_PASSWORD", "password")

	config, err := helper.NewConfiguration()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	h, err := heritage.New(config)
	if err != nil {
		log.Fatalf("error creating heritage instance: %v", err)
	}
	defer h.Close()

	ctx := context.Background()

	_, err = h.DB.Instance.Exec(`INSERT INTO Acquisition
		(object_id, responsible_institute, responsible_person, technique, tool, start_date, end_date)
		VALUES ('13', 'Opificio delle Pietre Dure', 'Bianchi, Anna', '3D scanning', 'Artec Eva', '2023-05-02', '2023-05-09')`)
	if err != nil {
		log.Fatalf("error seeding process store: %v", err)
	}

	acquisitions, err := h.Engine.GetAcquisitionsByTechnique(ctx, "scan")
	if err != nil {
		log.Fatalf("error fetching acquisitions: %v", err)
	}
	for _, acquisition := range acquisitions {
		fmt.Printf("%s of object %s with %q using %v\n",
			acquisition.Kind, acquisition.Object.ID, acquisition.Technique, acquisition.Tools)
	}

	started, err := h.Engine.GetActivitiesStartedAfter(ctx, "2023-01-01")
	if err != nil {
		log.Fatalf("error fetching activities: %v", err)
	}
	fmt.Printf("activities started in or after 2023: %d\n", len(started))
}
