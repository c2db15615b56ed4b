// Demonstrates the zero-configuration setup: an in-memory sqlite process
// store seeded with a few activity records, queried together with a SPARQL
// endpoint taken from the environment.
//
// Set HERITAGE_SPARQL_ENDPOINT (directly or via a .env file) to a running
// SPARQL endpoint, e.g. a local Blazegraph instance:
//
//	HERITAGE_SPARQL_ENDPOINT=http://localhost:9999/blazegraph/sparql
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/katyakrsn/heritage"
	"github.com/katyakrsn/heritage/helper"
)

func main() {
	// Missing .env files are fine, the environment may already be set.
	godotenv.Load()

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

	seed := []string{
		`INSERT INTO Acquisition (object_id, responsible_institute, responsible_person, technique, tool, start_date, end_date)
		 VALUES ('1', 'Museo Galileo', 'Rossi, Mario', 'Photogrammetry', 'Nikon D850, Agisoft Metashape', '2023-01-10', '2023-01-20')`,
		`INSERT INTO Processing (object_id, responsible_institute, tool, start_date, end_date)
		 VALUES ('1', 'Museo Galileo', 'Blender', '2023-02-01', '2023-02-15')`,
		`INSERT INTO Exporting (object_id, responsible_institute, tool, start_date, end_date)
		 VALUES ('1', 'Museo Galileo', 'Blender', '2023-03-01', '2023-03-05')`,
	}
	for _, stmt := range seed {
		if _, err := h.DB.Instance.Exec(stmt); err != nil {
			log.Fatalf("error seeding process store: %v", err)
		}
	}

	objects, err := h.Engine.GetAllCulturalHeritageObjects(ctx)
	if err != nil {
		log.Fatalf("error fetching objects: %v", err)
	}
	fmt.Printf("objects in the metadata store: %d\n", len(objects))
	for _, object := range objects {
		fmt.Printf("  [%s] %s: %q\n", object.Kind, object.ID, object.Title)
	}

	activities, err := h.Engine.GetActivitiesByResponsibleInstitution(ctx, "museo")
	if err != nil {
		log.Fatalf("error fetching activities: %v", err)
	}
	fmt.Printf("activities at institutions matching \"museo\": %d\n", len(activities))
	for _, activity := range activities {
		fmt.Printf("  %s on object %s (%s to %s)\n",
			activity.Kind, activity.Object.ID, activity.StartDate, activity.EndDate())
	}

	people, err := h.Engine.GetAllPeople(ctx)
	if err != nil {
		log.Fatalf("error fetching people: %v", err)
	}
	fmt.Printf("known people: %d\n", len(people))
	for _, person := range people {
		fmt.Printf("  %s (%s)\n", person.Name, person.ID)
	}
}
