//
// liblf is a client that interacts with the lostfound API.
//

// Create client
//
//	client, err := liblf.NewDefaultClient("http://localhost:5000")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Report a lost item
//
//	item, err := client.Report(liblf.Report{
//		Name:      "Headphones",
//		Category:  "Electronics",
//		Location:  "Zone A",
//		Date:      "2024-05-01",
//		ImagePath: "headphones.png", // optional
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// List held items
//
//	items, err := client.ListItems(liblf.Criteria{Category: "Electronics"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, item := range items {
//		fmt.Println(item.Name, item.Location, item.Date)
//	}
package liblf
