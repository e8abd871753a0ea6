package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerToolArguments(t *testing.T) {
	box := NewToolbox(NewWeatherLookup(&stubSource{currentErr: assert.AnError}))
	hotel, ok := box.GetPlannerTools()[2].(tool.InvokableTool)
	require.True(t, ok)

	tests := []struct {
		name    string
		args    string
		want    string
		invalid bool
	}{
		{name: "city", args: `{"city":"Kyoto"}`, want: HotelOptions("Kyoto")},
		{name: "city kept verbatim", args: `{"city":" Kyoto "}`, want: HotelOptions(" Kyoto ")},
		{name: "empty city", args: `{"city":""}`, want: HotelOptions("")},
		{name: "missing city", args: `{}`, invalid: true},
		{name: "wrong key", args: `{"destination":"Kyoto"}`, invalid: true},
		{name: "non-string city", args: `{"city":42}`, invalid: true},
		{name: "not json", args: `city=Kyoto`, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := hotel.InvokableRun(context.Background(), tt.args)
			require.NoError(t, err)
			if !tt.invalid {
				assert.Equal(t, tt.want, out)
				return
			}
			var res map[string]string
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, "invalid_arguments", res["error"])
			assert.Equal(t, ToolHotel, res["tool"])
			assert.NotEmpty(t, res["detail"])
		})
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds {
		got, ok := KindOf(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := KindOf("unknown")
	assert.False(t, ok)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestToolboxRun(t *testing.T) {
	src := &stubSource{currentErr: assert.AnError}
	box := NewToolbox(NewWeatherLookup(src))
	ctx := context.Background()

	out, err := box.Run(ctx, Call{Kind: FlightCall, City: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, FlightOptions("Rome"), out)

	out, err = box.Run(ctx, Call{Kind: HotelCall, City: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, HotelOptions("Rome"), out)

	out, err = box.Run(ctx, Call{Kind: WeatherCall, City: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, WeatherUnavailable, out)

	_, err = box.Run(ctx, Call{})
	assert.Error(t, err)
}

func TestPlannerTools(t *testing.T) {
	box := NewToolbox(NewWeatherLookup(&stubSource{currentErr: assert.AnError}))
	ctx := context.Background()

	ts := box.GetPlannerTools()
	infos, err := GetToolInfos(ctx, ts)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, ToolWeather, infos[0].Name)
	assert.Equal(t, ToolFlight, infos[1].Name)
	assert.Equal(t, ToolHotel, infos[2].Name)
	assert.Equal(t, "Get flight options to a city.", infos[1].Desc)

	flight, ok := ts[1].(tool.InvokableTool)
	require.True(t, ok)
	out, err := flight.InvokableRun(ctx, `{"city":"Paris in May"}`)
	require.NoError(t, err)
	assert.Equal(t, FlightOptions("Paris in May"), out)

	out, err = flight.InvokableRun(ctx, `{"destination":"Paris"}`)
	require.NoError(t, err)
	var res map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "invalid_arguments", res["error"])
	assert.Equal(t, ToolFlight, res["tool"])
}
