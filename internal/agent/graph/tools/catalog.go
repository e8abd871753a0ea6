package tools

import (
	"fmt"
	"strings"
)

// FlightOffer is one simulated flight listing.
type FlightOffer struct {
	Airline  string
	Stops    string
	PriceUSD int
}

// HotelOffer is one simulated hotel listing.
type HotelOffer struct {
	Name     string
	Rating   string
	NightUSD int
}

var flightOffers = []FlightOffer{
	{Airline: "Emirates", Stops: "Non-stop", PriceUSD: 750},
	{Airline: "Qatar Airways", Stops: "1 Stop", PriceUSD: 680},
	{Airline: "Lufthansa", Stops: "Non-stop", PriceUSD: 820},
}

var hotelOffers = []HotelOffer{
	{Name: "Grand Palace Hotel", Rating: "4.5", NightUSD: 180},
	{Name: "City Lights Resort", Rating: "4.2", NightUSD: 150},
	{Name: "Heritage Stay Inn", Rating: "4.0", NightUSD: 120},
}

// FlightOptions lists the simulated flights to city.
func FlightOptions(city string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nFlight Options to %s:\n", city)
	for _, o := range flightOffers {
		fmt.Fprintf(&b, "- %s | %s | $%d\n", o.Airline, o.Stops, o.PriceUSD)
	}
	return b.String()
}

// HotelOptions lists the simulated hotels in city.
func HotelOptions(city string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nHotel Options in %s:\n", city)
	for _, o := range hotelOffers {
		fmt.Fprintf(&b, "- %s | %s⭐ | $%d/night\n", o.Name, o.Rating, o.NightUSD)
	}
	return b.String()
}
