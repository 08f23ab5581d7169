package weather

import "github.com/voyagetools/voyage-mcp/internal/domain"

var unitChoices = []string{"metric", "imperial", "standard"}

const unitsDescription = "Unit system: metric (Celsius, m/s), imperial (Fahrenheit, mph) or standard (Kelvin, m/s)"

var currentWeatherSpec = domain.ToolSpec{
	Name:        "get_current_weather",
	Description: "Get current weather conditions for a location: temperature, conditions, humidity, wind and pressure.",
	Fields: []domain.FieldSpec{
		{
			Name:        "location",
			Type:        domain.FieldTypeString,
			Description: "City name, optionally with country code, e.g. 'Paris' or 'Paris,FR'",
			Required:    true,
		},
		{
			Name:        "units",
			Type:        domain.FieldTypeString,
			Description: unitsDescription,
			Enum:        unitChoices,
			Default:     "metric",
		},
	},
}

var forecastSpec = domain.ToolSpec{
	Name:        "get_weather_forecast",
	Description: "Get a daily weather forecast for a location, up to 5 days ahead.",
	Fields: []domain.FieldSpec{
		{
			Name:        "location",
			Type:        domain.FieldTypeString,
			Description: "City name, optionally with country code, e.g. 'Paris' or 'Paris,FR'",
			Required:    true,
		},
		{
			Name:        "days",
			Type:        domain.FieldTypeNumber,
			Description: "Number of forecast days (1-5)",
			Integer:     true,
			Min:         domain.Bound(1),
			Max:         domain.Bound(5),
			Default:     3,
		},
		{
			Name:        "units",
			Type:        domain.FieldTypeString,
			Description: unitsDescription,
			Enum:        unitChoices,
			Default:     "metric",
		},
	},
}

var searchLocationsSpec = domain.ToolSpec{
	Name:        "search_locations",
	Description: "Search for locations by name and return matching places with their coordinates.",
	Fields: []domain.FieldSpec{
		{
			Name:        "query",
			Type:        domain.FieldTypeString,
			Description: "Place name to search for, e.g. 'Springfield'",
			Required:    true,
		},
		{
			Name:        "limit",
			Type:        domain.FieldTypeNumber,
			Description: "Maximum number of results (1-10)",
			Integer:     true,
			Min:         domain.Bound(1),
			Max:         domain.Bound(10),
			Default:     5,
		},
	},
}
