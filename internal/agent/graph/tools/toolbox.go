package tools

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

const (
	ToolWeather = "weather_tool"
	ToolFlight  = "flight_tool"
	ToolHotel   = "hotel_tool"
)

// Kind identifies one of the planner's tools.
type Kind int

const (
	WeatherCall Kind = iota + 1
	FlightCall
	HotelCall
)

var kindNames = map[Kind]string{
	WeatherCall: ToolWeather,
	FlightCall:  ToolFlight,
	HotelCall:   ToolHotel,
}

var kindDescs = map[Kind]string{
	WeatherCall: "Get current weather and 5-day forecast of a city.",
	FlightCall:  "Get flight options to a city.",
	HotelCall:   "Get hotel options in a city.",
}

// Kinds lists every tool in registration order.
var Kinds = []Kind{WeatherCall, FlightCall, HotelCall}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf resolves a tool name.
func KindOf(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// CityArgs is the argument object every planner tool accepts.
type CityArgs struct {
	City string `json:"city" jsonschema:"Destination city name"`
}

// cityInput tells a missing city apart from an empty one.
type cityInput struct {
	City *string `json:"city"`
}

// Call is a single tool invocation requested by the model.
type Call struct {
	Kind Kind
	City string
}

// Toolbox executes planner tool calls.
type Toolbox struct {
	weather *WeatherLookup
}

func NewToolbox(weather *WeatherLookup) *Toolbox {
	return &Toolbox{weather: weather}
}

// Run executes call and returns the text handed back to the model.
func (b *Toolbox) Run(ctx context.Context, call Call) (string, error) {
	switch call.Kind {
	case WeatherCall:
		return b.weather.Lookup(ctx, call.City), nil
	case FlightCall:
		return FlightOptions(call.City), nil
	case HotelCall:
		return HotelOptions(call.City), nil
	default:
		return "", fmt.Errorf("unsupported tool kind %v", call.Kind)
	}
}

// Info describes kind to the model.
func Info(kind Kind) *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: kind.String(),
		Desc: kindDescs[kind],
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"city": {
				Type:     schema.String,
				Desc:     "Destination city name, exactly as given in the request.",
				Required: true,
			},
		}),
	}
}

// GetPlannerTools returns the toolbox's tools in eino form. Arguments that
// do not decode come back to the model as an invalid_arguments result.
func (b *Toolbox) GetPlannerTools() []tool.BaseTool {
	out := make([]tool.BaseTool, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, b.newPlannerTool(k))
	}
	return out
}

func (b *Toolbox) newPlannerTool(kind Kind) tool.BaseTool {
	t := utils.NewTool(Info(kind), func(ctx context.Context, in *cityInput) (string, error) {
		if in == nil || in.City == nil {
			return "", fmt.Errorf("%s: missing required argument city", kind)
		}
		return b.Run(ctx, Call{Kind: kind, City: *in.City})
	})
	return utils.WrapToolWithErrorHandler(t, invalidArguments(kind))
}

func invalidArguments(kind Kind) utils.ErrorHandler {
	return func(_ context.Context, err error) string {
		out, _ := sonic.MarshalString(map[string]string{
			"error":  "invalid_arguments",
			"tool":   kind.String(),
			"detail": err.Error(),
		})
		return out
	}
}

// GetToolInfos collects ToolInfo for binding to a chat model.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
