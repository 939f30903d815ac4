// Package biplane is the wire-frame biplane: its physical dimensions and the
// sequence of bent wires that make up the airframe.
package biplane

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/scene"
	"github.com/piwi3910/WireBend/internal/solid"
	"github.com/piwi3910/WireBend/internal/wire"
	"github.com/rs/zerolog/log"
)

// Wire and part dimensions, mm and degrees.
const (
	ThickWire = 1.0
	ThinWire  = 0.5

	SolarPanelLength    = 35.0
	SolarPanelWidth     = 13.9
	SolarPanelThickness = 1.4
	SolarPanelSpacing   = 1.0

	CabinHeight    = 11.0
	TopWingHeight  = 2.5
	CabinWidth     = 13.0
	TailWidth      = 6.0
	CabinLength    = 20.0
	WingBendAngle  = 60.0
	CabinBendAngle = 75.0
	RotorPosition  = 5.0
	RotorDiameter  = 18.0
	RotorAngle     = 55.0
	SpoilerAngle   = 60.0

	goldenRatio      = 1.618
	frontFrameScale  = 0.8
	wheelAttachID    = 5.0
	wheelAxisHeight  = -3.0
	accessoryOpacity = 0.2
)

// Dimensions are the lengths derived from the constants.
type Dimensions struct {
	WingWidth           float64
	WingLength          float64
	PlaneLength         float64
	PlaneBackLength     float64
	TopWingPosition     float64
	WingSpacerHeight    float64
	WingSpacerWingPos   float64
	WingSpacerLength    float64
	WingSupportPos      float64
	WingSupportID       float64
	CabinFrameWidth     float64
	CabinFrameHeight    float64
	CabinBendFrame      float64
	CabinStraightFrame  float64
	FuselageBottomPos   float64
	FuselageTopPos      float64
	CabinTailDZ         float64
	CabinTailDY         float64
	CabinTailDX         float64
	CabinTailAngleZY    float64
	CabinTailAngleXY    float64
	WheelAxisLength     float64
	WheelAxisPosX       float64
	WheelAxisPosY       float64
	WingSupportBeamX    float64
	WingSupportBeamY    float64
	WingSupportBeamTilt float64
}

func sind(deg float64) float64 { return math.Sin(mgl64.DegToRad(deg)) }
func cosd(deg float64) float64 { return math.Cos(mgl64.DegToRad(deg)) }
func atan2d(y, x float64) float64 {
	return mgl64.RadToDeg(math.Atan2(y, x))
}

// Derive computes the dimensions of the airframe.
func Derive() Dimensions {
	var d Dimensions
	d.WingWidth = SolarPanelWidth + ThickWire
	d.WingLength = SolarPanelLength + ThickWire/2 + SolarPanelSpacing/2 + d.WingWidth/3*sind(WingBendAngle)
	d.PlaneLength = d.WingLength * goldenRatio
	d.PlaneBackLength = d.PlaneLength - RotorPosition
	d.TopWingPosition = ThickWire + CabinHeight + TopWingHeight
	d.WingSpacerHeight = d.TopWingPosition - ThickWire - ThinWire/2
	d.WingSpacerWingPos = CabinWidth/2 + d.WingSpacerHeight*goldenRatio
	d.WingSpacerLength = d.WingWidth / 3 * 2
	d.WingSupportPos = CabinWidth/2 + CabinWidth/2
	d.WingSupportID = ThickWire * 1.5

	d.CabinFrameWidth = CabinWidth + 2*ThinWire
	d.CabinFrameHeight = CabinHeight + 2*ThinWire
	d.CabinBendFrame = d.CabinFrameWidth / 3 / sind(CabinBendAngle)
	d.CabinStraightFrame = d.CabinFrameHeight - d.CabinFrameWidth/3*cosd(CabinBendAngle)

	d.FuselageBottomPos = ThickWire
	d.FuselageTopPos = ThickWire + d.CabinStraightFrame - 2*ThickWire
	d.CabinTailDZ = (d.FuselageTopPos - d.FuselageBottomPos - TailWidth) / 2
	d.CabinTailDY = d.PlaneBackLength - CabinLength
	d.CabinTailDX = (CabinWidth - TailWidth) / 2
	d.CabinTailAngleZY = atan2d(d.CabinTailDZ, d.CabinTailDY)
	d.CabinTailAngleXY = atan2d(d.CabinTailDX, d.CabinTailDY)

	d.WheelAxisLength = d.PlaneLength / 2
	d.WheelAxisPosX = d.WheelAxisLength / 2
	d.WheelAxisPosY = d.WingWidth * 2 / 3

	d.WingSupportBeamX = d.WingSupportPos + d.WingSupportID - ThinWire/2 - CabinWidth/2 - ThickWire/2
	d.WingSupportBeamY = d.TopWingPosition - ThickWire/2 - ThinWire/2 - d.FuselageTopPos
	d.WingSupportBeamTilt = atan2d(-d.WingSupportBeamY, d.WingSupportBeamX)
	return d
}

// Options selects optional parts of the model.
type Options struct {
	// Accessories adds the solar panels, capacitor and LED to the solid
	// model. They are not wire and never reach the ledger or the sheet.
	Accessories bool
}

// builder commits wires to one scene.
type builder struct {
	sc  *scene.Scene
	dim Dimensions
}

// commit commits each wire in order and stops at the first failure.
func (b *builder) commit(ws ...*wire.BendWire) error {
	for _, w := range ws {
		if err := w.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Build adds the complete biplane to sc.
func Build(sc *scene.Scene, opts Options) error {
	b := &builder{sc: sc, dim: Derive()}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"wings", b.wings},
		{"wing supports", b.wingSupports},
		{"cabin", b.cabin},
		{"fuselage", b.fuselage},
		{"tail", b.tail},
		{"landing gear", b.landingGear},
		{"bus bar", b.busBar},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("build %s: %w", s.name, err)
		}
		log.Debug().Str("part", s.name).Int("pieces", len(sc.Pieces())).Msg("part built")
	}
	if opts.Accessories {
		b.accessories()
	}
	return nil
}

func (b *builder) wings() error {
	d := b.dim
	wingFrame, err := wire.New(b.sc, "wingFrame", ThickWire,
		model.Seg(SolarPanelLength, 0, 0),
		model.Seg(ThickWire/2, 0, 0),
		model.Seg(SolarPanelSpacing/2, 0, 0),
		model.Seg(d.WingWidth/3/sind(WingBendAngle), WingBendAngle, 0),
		model.Seg(d.WingWidth/3, 90-WingBendAngle, 0),
		model.Seg(d.WingWidth/3/sind(WingBendAngle), 90-WingBendAngle, 0),
		model.Seg(SolarPanelLength, WingBendAngle, 0),
		model.Seg(SolarPanelSpacing/2, 0, 0),
		model.Seg(ThickWire/2, 0, 0),
	)
	if err != nil {
		return err
	}
	if err := b.commit(
		wingFrame.Copy(),
		wingFrame.Copy().Mirror(1, 0, 0),
		wingFrame.Copy().Translate(0, 0, d.TopWingPosition),
		wingFrame.Copy().Translate(0, 0, d.TopWingPosition).Mirror(1, 0, 0),
	); err != nil {
		return err
	}

	spacerBottom, err := wire.New(b.sc, "wingSpacerBottom", ThinWire, model.Seg(d.WingWidth-ThickWire, 0, 0))
	if err != nil {
		return err
	}
	spacerBottom.Rotate(0, 0, 90)
	spacerTop, err := wire.New(b.sc, "wingSpacerTop", ThinWire, model.Seg(d.WingWidth, 0, 0))
	if err != nil {
		return err
	}
	spacerTop.Rotate(0, 0, 90)
	spacer, err := wire.New(b.sc, "wingSpacer", ThinWire, model.Seg(d.WingSpacerHeight, 0, 0))
	if err != nil {
		return err
	}
	spacer.Rotate(0, -90, 0)

	topZ := d.TopWingPosition - ThickWire/2 - ThinWire/2
	nearY := (d.WingWidth - d.WingSpacerLength) / 2
	farY := (d.WingWidth + d.WingSpacerLength) / 2
	return b.commit(
		spacerBottom.Copy().Translate(d.WingSpacerWingPos, ThickWire/2, 0),
		spacerBottom.Copy().Translate(d.WingSpacerWingPos, ThickWire/2, 0).Mirror(1, 0, 0),
		spacerTop.Copy().Translate(d.WingSpacerWingPos, 0, topZ),
		spacerTop.Copy().Translate(d.WingSpacerWingPos, 0, topZ).Mirror(1, 0, 0),
		spacer.Copy().Translate(d.WingSpacerWingPos, nearY, ThinWire/2),
		spacer.Copy().Translate(d.WingSpacerWingPos, nearY, ThinWire/2).Mirror(1, 0, 0),
		spacer.Copy().Translate(d.WingSpacerWingPos, farY, ThinWire/2),
		spacer.Copy().Translate(d.WingSpacerWingPos, farY, ThinWire/2).Mirror(1, 0, 0),
	)
}

func (b *builder) wingSupports() error {
	d := b.dim
	topZ := d.TopWingPosition - ThickWire/2 - ThinWire/2

	support, err := wire.New(b.sc, "wingSupport", ThinWire, model.Seg(d.WingWidth, 0, 0))
	if err != nil {
		return err
	}
	support.Rotate(0, 0, 90)
	if err := b.commit(
		support.Copy().Translate(d.WingSupportPos, 0, topZ),
		support.Copy().Translate(d.WingSupportPos+d.WingSupportID, 0, topZ),
		support.Copy().Translate(d.WingSupportPos, 0, topZ).Mirror(1, 0, 0),
		support.Copy().Translate(d.WingSupportPos+d.WingSupportID, 0, topZ).Mirror(1, 0, 0),
	); err != nil {
		return err
	}

	beam, err := wire.New(b.sc, "wingSupportBeam", ThinWire,
		model.Seg(math.Hypot(d.WingSupportBeamX, d.WingSupportBeamY), 0, 0))
	if err != nil {
		return err
	}
	beam.Rotate(0, d.WingSupportBeamTilt, 0).Translate(CabinWidth/2+ThickWire/2, 0, d.FuselageTopPos)
	return b.commit(
		beam.Copy().Translate(0, d.WingWidth/3, 0),
		beam.Copy().Translate(0, 2*d.WingWidth/3, 0),
		beam.Copy().Translate(0, d.WingWidth/3, 0).Mirror(1, 0, 0),
		beam.Copy().Translate(0, 2*d.WingWidth/3, 0).Mirror(1, 0, 0),
	)
}

// cabinFrameSegments is the outline of a cabin bulkhead at the given scale.
func (b *builder) cabinFrameSegments(scale float64) []model.WireSegment {
	d := b.dim
	return []model.WireSegment{
		model.Seg(d.CabinFrameWidth*scale, 0, 0),
		model.Seg(d.CabinStraightFrame*scale, 90, 0),
		model.Seg(d.CabinBendFrame*scale, CabinBendAngle, 0),
		model.Seg(d.CabinFrameWidth/3*scale, 90-CabinBendAngle, 0),
		model.Seg(d.CabinBendFrame*scale, 90-CabinBendAngle, 0),
		model.Seg(d.CabinStraightFrame*scale, CabinBendAngle, 0),
	}
}

func (b *builder) cabin() error {
	d := b.dim
	frame, err := wire.New(b.sc, "cabinFrame", ThinWire, b.cabinFrameSegments(1)...)
	if err != nil {
		return err
	}
	frame.Rotate(90, 0, 0)

	front, err := wire.New(b.sc, "cabinFrontFrame", ThinWire, b.cabinFrameSegments(frontFrameScale)...)
	if err != nil {
		return err
	}
	front.Rotate(90, 0, 0)

	rotor, err := wire.New(b.sc, "rotor", ThinWire, model.Seg(RotorDiameter, 0, 0))
	if err != nil {
		return err
	}
	rotor.Rotate(0, RotorAngle, 0).
		Translate(-RotorDiameter/2*cosd(RotorAngle), 0, RotorDiameter/2*sind(RotorAngle))

	return b.commit(
		frame.Copy().Translate(-d.CabinFrameWidth/2, ThickWire/2, 0),
		frame.Copy().Translate(-d.CabinFrameWidth/2, CabinLength, 0),
		frame.Copy().Translate(-d.CabinFrameWidth/2, CabinLength+3*ThickWire, 0),
		front.Copy().
			Translate(-d.CabinFrameWidth/2*frontFrameScale, 0, 0).
			Translate(0, -RotorPosition+ThickWire, 0),
		rotor.Copy().Translate(0, -RotorPosition, CabinHeight/2*frontFrameScale),
	)
}

func (b *builder) fuselage() error {
	d := b.dim
	tailLength := d.CabinTailDY / cosd(d.CabinTailAngleZY) / cosd(d.CabinTailAngleXY)
	longeron, err := wire.Simplify(b.sc, "fuselageLength", ThickWire,
		model.Seg(CabinLength, 0, 0),
		model.Seg(tailLength, d.CabinTailAngleXY, d.CabinTailAngleZY),
	)
	if err != nil {
		return err
	}
	longeron.Rotate(0, 0, 90)

	return b.commit(
		longeron.Copy().Mirror(0, 0, 1).Translate(CabinWidth/2, 0, d.FuselageBottomPos),
		longeron.Copy().Translate(CabinWidth/2, 0, d.FuselageTopPos),
		longeron.Copy().Mirror(0, 0, 1).Translate(CabinWidth/2, 0, d.FuselageBottomPos).Mirror(1, 0, 0),
		longeron.Copy().Translate(CabinWidth/2, 0, d.FuselageTopPos).Mirror(1, 0, 0),
	)
}

func (b *builder) tail() error {
	d := b.dim
	aileron, err := wire.New(b.sc, "aileron", ThickWire,
		model.Seg(3*TailWidth, 0, 0),
		model.Seg(TailWidth, 90, 0),
		model.Seg(3*TailWidth, 90, 0),
		model.Seg(TailWidth, 90, 0),
	)
	if err != nil {
		return err
	}

	spoiler, err := wire.New(b.sc, "spoiler", ThickWire,
		model.Seg(2, 0, 0),
		model.Seg(2*TailWidth, SpoilerAngle, 0),
		model.Seg(TailWidth, 180-2*SpoilerAngle, 0),
		model.Seg(3*TailWidth, 90, 0),
		model.Seg(TailWidth, SpoilerAngle, 0),
		model.Seg(TailWidth, SpoilerAngle, 0),
		model.Seg(TailWidth, SpoilerAngle, 0),
	)
	if err != nil {
		return err
	}
	spoiler.Rotate(90, -SpoilerAngle, -90)

	tailEnd, err := wire.New(b.sc, "tailEnd", ThickWire, model.Seg(TailWidth, 0, 0))
	if err != nil {
		return err
	}
	tailEnd.Translate(-TailWidth/2, 0, 0)

	y := d.PlaneBackLength - TailWidth/2
	z := ThickWire + d.FuselageBottomPos + d.CabinTailDZ + TailWidth
	return b.commit(
		aileron.Copy().Translate(-TailWidth*3/2, y, z),
		spoiler.Copy().Translate(0, y, z),
		tailEnd.Copy().Translate(0, y, d.CabinTailDZ+ThickWire),
	)
}

func (b *builder) landingGear() error {
	d := b.dim
	axis, err := wire.New(b.sc, "wheelAxis", ThickWire, model.Seg(d.PlaneLength/2, 0, 0))
	if err != nil {
		return err
	}
	if err := b.commit(axis.Copy().Translate(-d.WheelAxisPosX, d.WheelAxisPosY, wheelAxisHeight)); err != nil {
		return err
	}

	dx := d.WheelAxisPosX - wheelAttachID
	support, err := wire.New(b.sc, "wheelAxisSupport", ThickWire,
		model.Seg(math.Sqrt(dx*dx+d.WheelAxisPosY*d.WheelAxisPosY+wheelAxisHeight*wheelAxisHeight), 0, 0))
	if err != nil {
		return err
	}
	support.Rotate(0, 0, 90-atan2d(dx, d.WheelAxisPosY)).
		Rotate(atan2d(wheelAxisHeight, d.WheelAxisPosY), 0, 0)

	return b.commit(
		support.Copy().Translate(wheelAttachID/2, 0, 0),
		support.Copy().Translate(wheelAttachID/2, 0, 0).Mirror(1, 0, 0),
	)
}

func (b *builder) busBar() error {
	d := b.dim
	bus, err := wire.New(b.sc, "vplusplusBus", ThinWire, model.Seg(d.WingLength, 0, 0))
	if err != nil {
		return err
	}
	return b.commit(bus.Copy().Translate(-d.WingLength/2, d.WingWidth/2, ThickWire/2+CabinHeight))
}

// accessories adds mock-ups of the solar panels, the storage capacitor and
// the LED so the wire frame can be checked against them.
func (b *builder) accessories() {
	d := b.dim

	var panel solid.Node = solid.Cube{Size: mgl64.Vec3{SolarPanelLength, SolarPanelWidth, SolarPanelThickness}}
	panel = solid.Translate(panel, SolarPanelSpacing/2, ThickWire/2, d.TopWingPosition-ThickWire/2)
	panels := solid.NewUnion(panel, solid.Mirror(panel, 1, 0, 0))
	b.sc.AddSolid(solid.Color(panels, "blue", accessoryOpacity))

	// Mouser 594-MAL223051011E3, at OpenSCAD's default resolution
	var capacitor solid.Node = solid.Cylinder{Height: 20, Diameter: 10}
	capacitor = solid.Translate(solid.Rotate(capacitor, -90, 0, 0), 0, 15, 6)
	b.sc.AddSolid(solid.Color(capacitor, "red", accessoryOpacity))

	led := solid.NewUnion(
		solid.Cylinder{Height: 5.2, Diameter: 3.0, Facets: 100},
		solid.Cylinder{Height: 1.0, Diameter: 4.0, Facets: 100},
	)
	b.sc.AddSolid(solid.Color(led, "white", accessoryOpacity))

	log.Debug().Msg("accessories added")
}
