package cmd

import (
	"fmt"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ShowSceneInfo prints the scene singletons and primitive counts.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	if err := sc.Validate(); err != nil {
		logger.Warningf("scene is not renderable: %v", err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Element", "Count", "Details"})

	table.Append([]string{"ambient", presence(sc.Ambient.Present),
		fmt.Sprintf("ratio %.2f color %s", sc.Ambient.Ratio, rgb(sc.Ambient.Color))})
	table.Append([]string{"camera", presence(sc.Camera.Present),
		fmt.Sprintf("at %s dir %s fov %.1f focal %.2f", vec(sc.Camera.Position), vec(sc.Camera.Direction), sc.Camera.FOV, sc.Camera.FocalLength)})
	table.Append([]string{"light", presence(sc.Light.Present),
		fmt.Sprintf("at %s brightness %.2f color %s", vec(sc.Light.Position), sc.Light.Brightness, rgb(sc.Light.Color))})

	counts := sc.Counts()
	decorated := decorationCounts(sc)
	for kind := scene.KindSphere; kind <= scene.KindParaboloid; kind++ {
		if counts[kind] == 0 {
			continue
		}
		table.Append([]string{kind.String(), fmt.Sprintf("%d", counts[kind]), decorated[kind]})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", len(sc.Primitives)), ""})

	table.Render()
	return nil
}

// decorationCounts summarizes checker, bump and specular use per kind
func decorationCounts(sc *scene.Scene) map[scene.Kind]string {
	type tally struct{ checker, bump, specular int }
	tallies := make(map[scene.Kind]*tally)
	for _, p := range sc.Primitives {
		t := tallies[p.Kind()]
		if t == nil {
			t = &tally{}
			tallies[p.Kind()] = t
		}
		if p.Checker != nil {
			t.checker++
		}
		if p.Bump != nil {
			t.bump++
		}
		if p.Material != nil {
			t.specular++
		}
	}

	out := make(map[scene.Kind]string, len(tallies))
	for kind, t := range tallies {
		out[kind] = fmt.Sprintf("checker %d bump %d specular %d", t.checker, t.bump, t.specular)
	}
	return out
}

func presence(ok bool) string {
	if ok {
		return "1"
	}
	return "0"
}

func vec(v core.Vec3) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func rgb(c core.Vec3) string {
	return fmt.Sprintf("%.0f,%.0f,%.0f", c.X*255, c.Y*255, c.Z*255)
}
