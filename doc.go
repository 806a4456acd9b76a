// Package beanfall renders a one-shot 3D coffee bean animation for a
// scrolling landing page, on top of [Ebitengine].
//
// A batch of beans is generated once per mount, waits until its section
// scrolls into view and then plays out: thrown beans arc onto a table and
// settle, falling beans drift down and disappear.
//
// # Quick start
//
// The simplest way to get started is [Run] with a [LandingPage], which lays
// out a page, mounts the scene in its bean section and wires the trigger:
//
//	cfg := beanfall.DefaultConfig()
//	page, err := beanfall.NewLandingPage(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	beanfall.Run(page, cfg.RunConfig())
//
// For full control, drive a [SceneHost] yourself. It implements
// [ebiten.Game]; call [SceneHost.Step] and [SceneHost.DrawTo] from your own
// game to embed it:
//
//	host := beanfall.NewSceneHost(cfg.HostConfig())
//	host.Mount()
//	host.AttachTrigger(beanfall.NewViewportTrigger(section, cfg.Trigger))
//
// # Particles
//
// [GenerateSpecs] draws one [ParticleSpec] per bean from a seeded [Rand];
// the same seed always yields the same field. [Step] advances a bean by one
// frame as a pure function of its spec, its [RuntimeState], the field's
// [Activation] snapshot and the scene time. A [ParticleField] owns the batch
// and the shared one-shot [Latch].
//
// # Triggers
//
// A [ViewportTrigger] watches a [Region] and fires once, the first time the
// visible fraction of the region inside the root-margin-adjusted viewport
// reaches its threshold. A [Page] feeds its viewport to every trigger it
// watches.
//
// # Assets
//
// Bean geometry comes from a glTF file loaded through an [AssetCache], at
// most once per path. [WriteBeanModel] writes a procedural stand-in.
//
// # Configuration
//
// [LoadConfig] reads a YAML file; every key is optional. See
// examples/config/beanfall.yaml.
//
// [Ebitengine]: https://ebitengine.org
package beanfall
