package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	inaturalist "github.com/inaturalist/inaturalist-go"
	"github.com/inaturalist/inaturalist-go/models"
)

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <route>",
		Short: "Send a GET to a read route such as observations/:id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(a.params)
			if err != nil {
				return err
			}
			result, err := a.client.Get(cmd.Context(), args[0], params, a.requestOptions())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}
}

func (a *app) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <route> <id>...",
		Short: "Read records of a route by id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(a.params)
			if err != nil {
				return err
			}
			result, err := a.client.Fetch(cmd.Context(), args[0], args[1:], params, a.requestOptions())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}
}

func (a *app) writeCmd(method, short string) *cobra.Command {
	return &cobra.Command{
		Use:   method + " <route>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(a.params)
			if err != nil {
				return err
			}
			opts := a.requestOptions()

			var result any
			switch method {
			case "put":
				result, err = a.client.Put(cmd.Context(), args[0], params, opts)
			case "delete":
				result, err = a.client.Delete(cmd.Context(), args[0], params, opts)
			default:
				result, err = a.client.Post(cmd.Context(), args[0], params, opts)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}
}

func (a *app) uploadCmd() *cobra.Command {
	var files []string
	var method string

	cmd := &cobra.Command{
		Use:   "upload <route>",
		Short: "Send params and files as multipart/form-data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(a.params)
			if err != nil {
				return err
			}
			for _, f := range files {
				field, path, ok := strings.Cut(f, "=")
				if !ok || field == "" || path == "" {
					return fmt.Errorf("invalid --file %q: want field=path", f)
				}
				upload, closeFile, err := openUpload(path)
				if err != nil {
					return err
				}
				defer closeFile()
				params[field] = upload
			}

			opts := a.requestOptions()
			opts.Method = method
			result, err := a.client.Upload(cmd.Context(), args[0], params, opts)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}
	cmd.Flags().StringArrayVar(&files, "file", nil, "File part in field=path form (repeatable)")
	cmd.Flags().StringVar(&method, "method", "POST", "POST or PUT")
	return cmd
}

func (a *app) scoreImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score-image <path>",
		Short: "Suggest taxa for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(a.params)
			if err != nil {
				return err
			}
			upload, closeFile, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer closeFile()
			params["image"] = upload

			result, err := a.client.ComputerVision.ScoreImage(cmd.Context(), params, a.requestOptions())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}
}

func (a *app) photoURLCmd() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "photo-url <observation-id>",
		Short: "Print the photo URLs of an observation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client.Observations.Fetch(cmd.Context(), args[0], nil, a.requestOptions())
			if err != nil {
				return err
			}
			resp, ok := result.(*inaturalist.Response)
			if !ok {
				return fmt.Errorf("unexpected response %T", result)
			}
			body, _ := resp.Value().(map[string]any)
			results, _ := body["results"].([]any)

			observations, err := models.DecodeResults[models.Observation](results)
			if err != nil {
				return err
			}
			for _, obs := range observations {
				for _, photo := range obs.Photos {
					line := photo.PhotoURL(size)
					if photo.FlaggedAsCopyrighted() {
						line += " (flagged)"
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&size, "size", models.DefaultPhotoSize, "square, thumb, small, medium, large or original")
	return cmd
}

// openUpload opens path as a file part. The caller must call the returned
// close function.
func openUpload(path string) (inaturalist.CustomUpload, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return inaturalist.CustomUpload{}, nil, fmt.Errorf("open upload: %w", err)
	}
	upload := inaturalist.CustomUpload{
		Content:     f,
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}
	return upload, func() { f.Close() }, nil
}
