package shared

// Property is a managed listing we look up on Google Places. The IDs match
// the slugs derived from Hostaway listing names.
type Property struct {
	ID      string
	Name    string
	Address string
}

var Properties = []Property{
	{
		ID:      "2b-n1-a-29-shoreditch-heights",
		Name:    "29 Shoreditch Heights",
		Address: "29 Shoreditch High Street, London E1 6JQ, UK",
	},
	{
		ID:      "1b-e2-b-45-canary-wharf-tower",
		Name:    "45 Canary Wharf Tower",
		Address: "45 Bank Street, Canary Wharf, London E14 5AB, UK",
	},
	{
		ID:      "studio-s3-12-kings-cross-central",
		Name:    "12 Kings Cross Central",
		Address: "12 Pancras Square, Kings Cross, London N1C 4AG, UK",
	},
	{
		ID:      "wembley-stadium",
		Name:    "Wembley Stadium",
		Address: "Wembley Stadium, Wembley HA9 0WS, UK",
	},
}

func PropertyByID(id string) (Property, bool) {
	for _, p := range Properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}
