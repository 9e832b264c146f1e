package shell

const helpText = `Your simple guide to PinAnimate!

1 - Choose a folder containing your png formatted images
2 - Organize your images with the move up or down options
3 - Set the duration and frames per second for the animated gif
4 - Run a live preview of your animation
5 - Finally export your animation as a gif to share with others`

const hintsText = `Helpful Hints!

1 - You can adjust only the fps option for your videos
2 - Showing an image row presents a preview of that image
3 - Image dimensions should be the same for best results
4 - Animation previews will only play for up to 10 seconds
5 - Animation and image previews are scaled down in size
6 - Supported file types are *.png and *.jpg
7 - Previews are not optimized with your fps or duration settings`

func (s *Shell) Help() string {
	s.ctx.Instances().Display.Message("Help", helpText)
	return helpText
}

func (s *Shell) Hints() string {
	s.ctx.Instances().Display.Message("Hints", hintsText)
	return hintsText
}
